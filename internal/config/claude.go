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
	"runtime"

	"github.com/rizome-dev/fabsetup/pkg/core"
)

// ClaudeTranslator maps launch specs to Claude Desktop's config format
type ClaudeTranslator struct{}

// NewClaudeTranslator creates a new Claude Desktop translator
func NewClaudeTranslator() *ClaudeTranslator {
	return &ClaudeTranslator{}
}

// ClaudeMCPServer represents an MCP server entry in Claude Desktop's format
type ClaudeMCPServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// Name returns the assistant's display name
func (c *ClaudeTranslator) Name() string {
	return "Claude Desktop"
}

// ConfigPath returns Claude Desktop's config file path
func (c *ClaudeTranslator) ConfigPath() string {
	homeDir, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Claude", "claude_desktop_config.json")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "Claude", "claude_desktop_config.json")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, "Claude", "claude_desktop_config.json")
		}
		return filepath.Join(homeDir, ".config", "Claude", "claude_desktop_config.json")
	}
}

// TranslateEntry converts a launch spec to Claude Desktop's entry format
func (c *ClaudeTranslator) TranslateEntry(spec core.LaunchSpec) (interface{}, error) {
	entry := ClaudeMCPServer{
		Command: spec.Command,
		Args:    spec.Args,
	}

	// Only carry env vars that have actual values
	if len(spec.Env) > 0 {
		envVars := make(map[string]string)
		for k, v := range spec.Env {
			if v != "" {
				envVars[k] = v
			}
		}
		if len(envVars) > 0 {
			entry.Env = envVars
		}
	}

	return entry, nil
}
