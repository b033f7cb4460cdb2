package config

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
	"os"
	"path/filepath"
	"testing"

	"github.com/rizome-dev/fabsetup/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewStateManager(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	t.Run("Starts Fresh Without File", func(t *testing.T) {
		manager, err := NewStateManager()
		require.NoError(t, err)
		assert.Empty(t, manager.Servers())
	})

	t.Run("Loads Existing State", func(t *testing.T) {
		statePath := filepath.Join(tempDir, ".fabsetup", "state.yaml")
		require.NoError(t, os.MkdirAll(filepath.Dir(statePath), 0755))

		state := &core.SetupState{
			Version: "1.0",
			Servers: []core.ServerState{
				{Name: "fabric-core", Installed: true, Source: "uv-sync"},
			},
		}

		data, err := yaml.Marshal(state)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(statePath, data, 0644))

		manager, err := NewStateManager()
		require.NoError(t, err)

		servers := manager.Servers()
		require.Len(t, servers, 1)
		assert.Equal(t, "fabric-core", servers[0].Name)
		assert.True(t, servers[0].Installed)
	})
}

func TestStateManager_SetServer(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	manager, err := NewStateManager()
	require.NoError(t, err)

	t.Run("Adds And Persists", func(t *testing.T) {
		err := manager.SetServer(core.ServerState{
			Name:      "powerbi-modeling",
			Installed: true,
			Source:    "marketplace",
		})
		require.NoError(t, err)

		// Reload from disk
		reloaded, err := NewStateManager()
		require.NoError(t, err)

		server, ok := reloaded.Server("powerbi-modeling")
		require.True(t, ok)
		assert.Equal(t, "marketplace", server.Source)
		assert.False(t, reloaded.state.LastUpdated.IsZero())
	})

	t.Run("Upserts Existing", func(t *testing.T) {
		err := manager.SetServer(core.ServerState{
			Name:      "powerbi-modeling",
			Installed: false,
		})
		require.NoError(t, err)

		server, ok := manager.Server("powerbi-modeling")
		require.True(t, ok)
		assert.False(t, server.Installed)
		assert.Len(t, manager.Servers(), 1)
	})
}

func TestStateManager_ClearServer(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	manager, err := NewStateManager()
	require.NoError(t, err)

	require.NoError(t, manager.SetServer(core.ServerState{Name: "fabric-core", Installed: true}))
	require.NoError(t, manager.ClearServer("fabric-core"))

	_, ok := manager.Server("fabric-core")
	assert.False(t, ok)

	// Clearing an unknown server is a no-op
	assert.NoError(t, manager.ClearServer("nonexistent"))
}
