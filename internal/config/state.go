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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rizome-dev/fabsetup/internal/utils"
	"github.com/rizome-dev/fabsetup/pkg/core"
	"gopkg.in/yaml.v3"
)

// StateManager persists the tool's own record of what has been provisioned
type StateManager struct {
	statePath string
	state     *core.SetupState
}

// NewStateManager creates a state manager backed by ~/.fabsetup/state.yaml
func NewStateManager() (*StateManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	statePath := filepath.Join(homeDir, ".fabsetup", "state.yaml")

	manager := &StateManager{
		statePath: statePath,
	}

	// Load existing state or start fresh
	if err := manager.Load(); err != nil {
		if os.IsNotExist(err) {
			manager.state = &core.SetupState{Version: "1.0"}
		} else {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
	}

	return manager, nil
}

// Load loads the setup state from disk
func (m *StateManager) Load() error {
	data, err := os.ReadFile(m.statePath)
	if err != nil {
		return err
	}

	var state core.SetupState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse state: %w", err)
	}

	m.state = &state
	return nil
}

// Save saves the setup state to disk
func (m *StateManager) Save() error {
	m.state.LastUpdated = time.Now()

	data, err := yaml.Marshal(m.state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := utils.WriteFile(m.statePath, data); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	return nil
}

// Servers returns the tracked server states
func (m *StateManager) Servers() []core.ServerState {
	return m.state.Servers
}

// Server returns the tracked state for a single server, if present
func (m *StateManager) Server(name string) (core.ServerState, bool) {
	for _, server := range m.state.Servers {
		if server.Name == name {
			return server, true
		}
	}
	return core.ServerState{}, false
}

// SetServer upserts the tracked state for a server and saves
func (m *StateManager) SetServer(state core.ServerState) error {
	for i, existing := range m.state.Servers {
		if existing.Name == state.Name {
			m.state.Servers[i] = state
			return m.Save()
		}
	}

	m.state.Servers = append(m.state.Servers, state)
	return m.Save()
}

// ClearServer removes the tracked state for a server and saves
func (m *StateManager) ClearServer(name string) error {
	for i, existing := range m.state.Servers {
		if existing.Name == name {
			m.state.Servers = append(m.state.Servers[:i], m.state.Servers[i+1:]...)
			return m.Save()
		}
	}
	return nil
}
