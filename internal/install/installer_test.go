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
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rizome-dev/fabsetup/internal/config"
	"github.com/rizome-dev/fabsetup/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestInstaller sets up a server root with fabric-core and
// translation-audit directories and an isolated HOME for the state file
func newTestInstaller(t *testing.T, uvScript string) (*Installer, *config.StateManager, string) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ServerFabricCore), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "translation-audit"), 0755))

	uvPath := filepath.Join(t.TempDir(), "uv")
	require.NoError(t, os.WriteFile(uvPath, []byte(uvScript), 0755))

	state, err := config.NewStateManager()
	require.NoError(t, err)

	return NewInstaller(root, uvPath, state), state, root
}

func TestInstaller_InstallFabricCore(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executables require a unix shell")
	}

	t.Run("Success Marks Installed", func(t *testing.T) {
		installer, state, _ := newTestInstaller(t, "#!/bin/sh\nexit 0\n")

		err := installer.InstallFabricCore(context.Background())
		require.NoError(t, err)

		server, ok := state.Server(ServerFabricCore)
		require.True(t, ok)
		assert.True(t, server.Installed)
		assert.Equal(t, "uv-sync", server.Source)
	})

	t.Run("Failure Is Fatal And Tracked", func(t *testing.T) {
		installer, state, _ := newTestInstaller(t, "#!/bin/sh\necho 'resolver error' >&2\nexit 1\n")

		err := installer.InstallFabricCore(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInstallFailed)
		assert.Contains(t, err.Error(), "resolver error")

		server, ok := state.Server(ServerFabricCore)
		require.True(t, ok)
		assert.False(t, server.Installed)
	})
}

func TestInstaller_InstallTranslationAudit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executables require a unix shell")
	}

	// Fake python that builds a minimal venv layout when invoked as
	// `python -m venv <dir>`, including a no-op pip. Commands use absolute
	// paths because the tests below restrict PATH to the fake python dir.
	venvScript := `#!/bin/sh
/usr/bin/mkdir -p "$3/bin"
printf '#!/bin/sh\nexit 0\n' > "$3/bin/pip"
/usr/bin/chmod +x "$3/bin/pip"
`

	t.Run("Success Returns Venv Python", func(t *testing.T) {
		installer, state, root := newTestInstaller(t, "#!/bin/sh\nexit 0\n")

		pythonDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(pythonDir, "python3"), []byte(venvScript), 0755))
		t.Setenv("PATH", pythonDir)

		venvPython, err := installer.InstallTranslationAudit(context.Background())
		require.NoError(t, err)

		expected := VenvPython(filepath.Join(root, "translation-audit", ".venv"))
		assert.Equal(t, expected, venvPython)

		server, ok := state.Server(ServerTranslationAudit)
		require.True(t, ok)
		assert.True(t, server.Installed)
		assert.Equal(t, "venv", server.Source)
	})

	t.Run("Missing Python Is Fatal", func(t *testing.T) {
		installer, state, _ := newTestInstaller(t, "#!/bin/sh\nexit 0\n")
		t.Setenv("PATH", t.TempDir())

		_, err := installer.InstallTranslationAudit(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrPythonNotFound)

		server, ok := state.Server(ServerTranslationAudit)
		require.True(t, ok)
		assert.False(t, server.Installed)
	})

	t.Run("Venv Creation Failure Is Fatal", func(t *testing.T) {
		installer, state, _ := newTestInstaller(t, "#!/bin/sh\nexit 0\n")

		pythonDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(pythonDir, "python3"), []byte("#!/bin/sh\nexit 2\n"), 0755))
		t.Setenv("PATH", pythonDir)

		_, err := installer.InstallTranslationAudit(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInstallFailed)

		server, ok := state.Server(ServerTranslationAudit)
		require.True(t, ok)
		assert.False(t, server.Installed)
	})
}
