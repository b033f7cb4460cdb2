package core

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
	"time"
)

// ServerSpec describes one provisionable MCP server
type ServerSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	WindowsOnly bool   `json:"windows_only,omitempty"`
}

// LaunchSpec is the command, arguments, and environment recorded in the
// assistant's config file to start one server process
type LaunchSpec struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// SetupState is the tool's own record of what has been provisioned
type SetupState struct {
	Version     string        `yaml:"version"`
	Servers     []ServerState `yaml:"servers"`
	LastUpdated time.Time     `yaml:"last_updated"`
}

// ServerState tracks the installation status of a single server
type ServerState struct {
	Name       string `yaml:"name"`
	Installed  bool   `yaml:"installed"`
	Source     string `yaml:"source,omitempty"` // uv-sync, venv, vscode-extension, marketplace
	Version    string `yaml:"version,omitempty"`
	BinaryPath string `yaml:"binary_path,omitempty"`
}

// AssistantTranslator maps launch specs to an assistant's on-disk config format
type AssistantTranslator interface {
	// Name returns the assistant's display name
	Name() string

	// ConfigPath returns the assistant's config file path
	ConfigPath() string

	// TranslateEntry converts a launch spec to the assistant's entry format
	TranslateEntry(spec LaunchSpec) (interface{}, error)
}
