package install

// Copyright (C) 2025 Rizome Labs, Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; either version 2
// of the License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program; if not, write to the Free Software
// Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

import (
	"context"
	"os/exec"
	"time"
)

// FabricResource is the token audience the configured servers authenticate against
const FabricResource = "https://api.fabric.microsoft.com/"

// azureProbeTimeout caps how long the token probe may block. The az CLI can
// hang on broken proxy setups and the check is advisory only.
var azureProbeTimeout = 15 * time.Second

// AzureStatus reports the state of the Azure CLI prerequisite. The tool never
// runs `az login` itself; the cached credential is an external collaborator.
type AzureStatus int

const (
	// AzureNotFound means the az CLI is not installed
	AzureNotFound AzureStatus = iota
	// AzureNotLoggedIn means az is installed but has no valid Fabric token
	AzureNotLoggedIn
	// AzureOK means a Fabric access token is available
	AzureOK
)

// String returns a human-readable description of the status
func (s AzureStatus) String() string {
	switch s {
	case AzureOK:
		return "authenticated"
	case AzureNotLoggedIn:
		return "not logged in (run 'az login')"
	default:
		return "azure cli not installed"
	}
}

// CheckAzureAuth probes the Azure CLI for a cached Fabric credential
func CheckAzureAuth(ctx context.Context) AzureStatus {
	az := findAz()
	if az == "" {
		return AzureNotFound
	}

	probeCtx, cancel := context.WithTimeout(ctx, azureProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, az, "account", "get-access-token", "--resource", FabricResource)
	if err := cmd.Run(); err != nil {
		return AzureNotLoggedIn
	}

	return AzureOK
}

// findAz locates the Azure CLI, including the .cmd shim on Windows
func findAz() string {
	for _, name := range []string{"az", "az.cmd"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
