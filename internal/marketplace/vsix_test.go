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
	"testing"

	"github.com/rizome-dev/fabsetup/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVSIX(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vsix")
	require.NoError(t, os.WriteFile(path, buildVSIX(t, entries), 0644))
	return path
}

func TestExtractServerBinary(t *testing.T) {
	t.Run("Extracts The Executable", func(t *testing.T) {
		vsixPath := writeVSIX(t, map[string]string{
			"extension/package.json": "{}",
			binaryEntry:              "exe-bytes",
		})

		destPath := filepath.Join(t.TempDir(), BinaryName)
		require.NoError(t, ExtractServerBinary(vsixPath, destPath))

		data, err := os.ReadFile(destPath)
		require.NoError(t, err)
		assert.Equal(t, "exe-bytes", string(data))

		info, err := os.Stat(destPath)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&0100, "binary should be executable")
	})

	t.Run("Missing Binary Entry", func(t *testing.T) {
		vsixPath := writeVSIX(t, map[string]string{
			"extension/package.json": "{}",
		})

		err := ExtractServerBinary(vsixPath, filepath.Join(t.TempDir(), BinaryName))
		assert.ErrorIs(t, err, core.ErrBinaryUnavailable)
	})

	t.Run("Rejects Traversal Entries", func(t *testing.T) {
		vsixPath := writeVSIX(t, map[string]string{
			"../../evil.sh": "rm -rf /",
			binaryEntry:     "exe-bytes",
		})

		err := ExtractServerBinary(vsixPath, filepath.Join(t.TempDir(), BinaryName))
		assert.ErrorIs(t, err, core.ErrBadArchive)
	})

	t.Run("Not A Zip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.vsix")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

		err := ExtractServerBinary(path, filepath.Join(t.TempDir(), BinaryName))
		assert.ErrorIs(t, err, core.ErrBadArchive)
	})
}

func TestValidateEntryName(t *testing.T) {
	assert.NoError(t, validateEntryName("extension/server/file.exe"))
	assert.Error(t, validateEntryName("/etc/passwd"))
	assert.Error(t, validateEntryName("../outside"))
	assert.Error(t, validateEntryName("a/../../outside"))
	assert.Error(t, validateEntryName(`..\windows\escape`))
}
