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
	"path/filepath"
	"runtime"

	"github.com/rizome-dev/fabsetup/pkg/core"
)

// Server names as they appear in the assistant config
const (
	ServerFabricCore       = "fabric-core"
	ServerModeling         = "powerbi-modeling"
	ServerTranslationAudit = "powerbi-translation-audit"
)

// Catalog returns the list of provisionable MCP servers
func Catalog() []core.ServerSpec {
	return []core.ServerSpec{
		{
			Name:        ServerFabricCore,
			Description: "Microsoft Fabric core tools - workspaces, lakehouses, capacities, deployment pipelines",
			Required:    true,
		},
		{
			Name:        ServerTranslationAudit,
			Description: "Power BI translation audit - checks semantic model translations for coverage gaps",
			Required:    true,
		},
		{
			Name:        ServerModeling,
			Description: "Power BI semantic modeling - TMDL editing via the prebuilt modeling server",
			WindowsOnly: true,
		},
	}
}

// FindSpec returns the catalog entry for a server name
func FindSpec(name string) (core.ServerSpec, bool) {
	for _, spec := range Catalog() {
		if spec.Name == name {
			return spec, true
		}
	}
	return core.ServerSpec{}, false
}

// ManagedNames returns the names of all servers this tool manages
func ManagedNames() []string {
	specs := Catalog()
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	return names
}

// FabricCoreLaunch builds the launch spec for fabric-core: uv runs the stdio
// entrypoint out of the server's own project directory
func FabricCoreLaunch(uvPath, root string) core.LaunchSpec {
	return core.LaunchSpec{
		Command: uvPath,
		Args:    []string{"--directory", filepath.Join(root, ServerFabricCore), "run", "fabric_mcp_stdio.py"},
	}
}

// TranslationAuditLaunch builds the launch spec for the translation audit
// server: the venv's python runs server.py directly
func TranslationAuditLaunch(root string) core.LaunchSpec {
	dir := filepath.Join(root, "translation-audit")
	return core.LaunchSpec{
		Command: VenvPython(filepath.Join(dir, ".venv")),
		Args:    []string{filepath.Join(dir, "server.py")},
	}
}

// ModelingLaunch builds the launch spec for the prebuilt modeling server
func ModelingLaunch(exePath string) core.LaunchSpec {
	return core.LaunchSpec{
		Command: exePath,
		Args:    []string{"--start"},
	}
}

// VenvPython returns the python interpreter path inside a virtual environment
func VenvPython(venvDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(venvDir, "bin", "python")
}

// VenvPip returns the pip path inside a virtual environment
func VenvPip(venvDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Scripts", "pip.exe")
	}
	return filepath.Join(venvDir, "bin", "pip")
}
