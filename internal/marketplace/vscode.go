package marketplace

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
	"sort"
	"strings"
)

// FindInVSCode looks for a modeling server binary already installed by the
// VS Code extension, newest extension version first
func FindInVSCode() (string, bool) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return findInExtensionsDir(filepath.Join(homeDir, ".vscode", "extensions"))
}

// findInExtensionsDir scans a VS Code extensions directory for the binary
func findInExtensionsDir(extDir string) (string, bool) {
	entries, err := os.ReadDir(extDir)
	if err != nil {
		return "", false
	}

	// Newest version directory sorts last; walk in reverse
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), ExtensionID) {
			names = append(names, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		exe := filepath.Join(extDir, name, "server", BinaryName)
		if info, err := os.Stat(exe); err == nil && !info.IsDir() {
			return exe, true
		}
	}

	return "", false
}
