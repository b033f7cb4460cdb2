package utils

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackedCloser struct {
	closed bool
}

func (c *trackedCloser) Close() error {
	c.closed = true
	return nil
}

func TestRunCleanup(t *testing.T) {
	t.Run("Runs Newest First", func(t *testing.T) {
		resetCleanup()

		var order []string
		RegisterCleanup(func() { order = append(order, "first") })
		RegisterCleanup(func() { order = append(order, "second") })
		RegisterCleanup(func() { order = append(order, "third") })

		RunCleanup()

		assert.Equal(t, []string{"third", "second", "first"}, order)
	})

	t.Run("Second Run Is A No-Op", func(t *testing.T) {
		resetCleanup()

		calls := 0
		RegisterCleanup(func() { calls++ })

		RunCleanup()
		RunCleanup()

		assert.Equal(t, 1, calls)
	})
}

func TestRegisterRemoval(t *testing.T) {
	resetCleanup()

	dir := filepath.Join(t.TempDir(), "scratch")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extension.vsix"), []byte("payload"), 0644))

	RegisterRemoval(dir)
	assert.DirExists(t, dir)

	RunCleanup()

	assert.NoDirExists(t, dir)
}

func TestRegisterCloser(t *testing.T) {
	resetCleanup()

	a := &trackedCloser{}
	b := &trackedCloser{}
	RegisterCloser(a)
	RegisterCloser(b)

	assert.False(t, a.closed)
	assert.False(t, b.closed)

	RunCleanup()

	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestRegisterCleanupConcurrent(t *testing.T) {
	resetCleanup()

	done := make(chan struct{}, 16)
	for i := 0; i < 16; i++ {
		go func() {
			RegisterCleanup(func() {})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}

	shutdown.mu.Lock()
	count := len(shutdown.actions)
	shutdown.mu.Unlock()
	assert.Equal(t, 16, count)

	RunCleanup()
}
