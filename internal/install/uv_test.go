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
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rizome-dev/fabsetup/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeExecutable drops an executable stub named name into dir
func writeFakeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755))
	return path
}

func TestFindUV(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executables require a unix shell")
	}

	t.Run("Prefers PATH", func(t *testing.T) {
		pathDir := t.TempDir()
		homeDir := t.TempDir()
		want := writeFakeExecutable(t, pathDir, "uv")

		// Fallback location also exists; PATH must win
		localBin := filepath.Join(homeDir, ".local", "bin")
		require.NoError(t, os.MkdirAll(localBin, 0755))
		writeFakeExecutable(t, localBin, "uv")

		t.Setenv("PATH", pathDir)
		t.Setenv("HOME", homeDir)

		got, err := FindUV()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Falls Back To Local Bin", func(t *testing.T) {
		homeDir := t.TempDir()
		localBin := filepath.Join(homeDir, ".local", "bin")
		require.NoError(t, os.MkdirAll(localBin, 0755))
		want := writeFakeExecutable(t, localBin, "uv")

		t.Setenv("PATH", t.TempDir()) // empty dir, no uv
		t.Setenv("HOME", homeDir)

		got, err := FindUV()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Falls Back To Cargo Bin", func(t *testing.T) {
		homeDir := t.TempDir()
		cargoBin := filepath.Join(homeDir, ".cargo", "bin")
		require.NoError(t, os.MkdirAll(cargoBin, 0755))
		want := writeFakeExecutable(t, cargoBin, "uv")

		t.Setenv("PATH", t.TempDir())
		t.Setenv("HOME", homeDir)

		got, err := FindUV()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Not Found", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		_, err := FindUV()
		assert.ErrorIs(t, err, core.ErrUVNotFound)
	})
}

func TestFindPython(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executables require a unix shell")
	}

	t.Run("Prefers python3", func(t *testing.T) {
		pathDir := t.TempDir()
		want := writeFakeExecutable(t, pathDir, "python3")
		writeFakeExecutable(t, pathDir, "python")

		t.Setenv("PATH", pathDir)

		got, err := FindPython()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Falls Back To python", func(t *testing.T) {
		pathDir := t.TempDir()
		want := writeFakeExecutable(t, pathDir, "python")

		t.Setenv("PATH", pathDir)

		got, err := FindPython()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Not Found", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())

		_, err := FindPython()
		assert.ErrorIs(t, err, core.ErrPythonNotFound)
	})
}
