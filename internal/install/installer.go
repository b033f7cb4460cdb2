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
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rizome-dev/fabsetup/internal/config"
	"github.com/rizome-dev/fabsetup/pkg/core"
)

// installTimeout bounds each package-manager invocation
const installTimeout = 5 * time.Minute

// Installer materializes the Python-based servers' dependencies. Each step
// either succeeds or fails the run; nothing is retried.
type Installer struct {
	root  string
	uv    string
	state *config.StateManager
}

// NewInstaller creates an installer rooted at the server source directory
func NewInstaller(root, uvPath string, state *config.StateManager) *Installer {
	return &Installer{
		root:  root,
		uv:    uvPath,
		state: state,
	}
}

// Root returns the server source root directory
func (i *Installer) Root() string {
	return i.root
}

// UV returns the resolved uv path
func (i *Installer) UV() string {
	return i.uv
}

// InstallFabricCore syncs fabric-core's dependencies with uv
func (i *Installer) InstallFabricCore(ctx context.Context) error {
	dir := filepath.Join(i.root, ServerFabricCore)

	if err := i.run(ctx, dir, i.uv, "sync"); err != nil {
		i.markFailed(ServerFabricCore)
		return fmt.Errorf("%w: fabric-core: %v", core.ErrInstallFailed, err)
	}

	return i.state.SetServer(core.ServerState{
		Name:      ServerFabricCore,
		Installed: true,
		Source:    "uv-sync",
	})
}

// InstallTranslationAudit creates the translation-audit venv and installs the
// mcp package into it. Returns the venv's python interpreter path.
func (i *Installer) InstallTranslationAudit(ctx context.Context) (string, error) {
	python, err := FindPython()
	if err != nil {
		i.markFailed(ServerTranslationAudit)
		return "", err
	}

	dir := filepath.Join(i.root, "translation-audit")
	venvDir := filepath.Join(dir, ".venv")

	if err := i.run(ctx, dir, python, "-m", "venv", venvDir); err != nil {
		i.markFailed(ServerTranslationAudit)
		return "", fmt.Errorf("%w: translation-audit venv: %v", core.ErrInstallFailed, err)
	}

	if err := i.run(ctx, dir, VenvPip(venvDir), "install", "--quiet", "mcp"); err != nil {
		i.markFailed(ServerTranslationAudit)
		return "", fmt.Errorf("%w: translation-audit pip: %v", core.ErrInstallFailed, err)
	}

	if err := i.state.SetServer(core.ServerState{
		Name:      ServerTranslationAudit,
		Installed: true,
		Source:    "venv",
	}); err != nil {
		return "", err
	}

	return VenvPython(venvDir), nil
}

// run executes a command with a bounded timeout and captured output
func (i *Installer) run(ctx context.Context, dir, name string, args ...string) error {
	runCtx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", name, err, string(output))
	}

	return nil
}

// markFailed records a failed install; the config merger never sees the server
func (i *Installer) markFailed(name string) {
	_ = i.state.SetServer(core.ServerState{
		Name:      name,
		Installed: false,
	})
}
