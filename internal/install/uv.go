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
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rizome-dev/fabsetup/pkg/core"
)

// FindUV locates the uv package manager: PATH first, then the standalone
// installer's and cargo's default locations
func FindUV() (string, error) {
	if path, err := exec.LookPath("uv"); err == nil {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", core.ErrUVNotFound
	}

	names := []string{"uv"}
	if runtime.GOOS == "windows" {
		names = []string{"uv.exe"}
	}

	for _, dir := range []string{
		filepath.Join(homeDir, ".local", "bin"),
		filepath.Join(homeDir, ".cargo", "bin"),
	} {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}

	return "", core.ErrUVNotFound
}

// FindPython locates a python interpreter on PATH, preferring python3
func FindPython() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", core.ErrPythonNotFound
}
