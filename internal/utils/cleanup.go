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
	"io"
	"os"
	"sync"
)

// shutdownRegistry holds actions to perform before the process exits on an
// interrupt, such as removing scratch download directories. Deferred calls
// do not run on that path, so anything transient must be registered here.
type shutdownRegistry struct {
	mu      sync.Mutex
	actions []func()
}

var shutdown = &shutdownRegistry{}

// RegisterCleanup queues fn to run during shutdown.
func RegisterCleanup(fn func()) {
	shutdown.mu.Lock()
	defer shutdown.mu.Unlock()
	shutdown.actions = append(shutdown.actions, fn)
}

// RegisterRemoval queues removal of path and everything under it.
func RegisterRemoval(path string) {
	RegisterCleanup(func() {
		_ = os.RemoveAll(path)
	})
}

// RegisterCloser queues closer.Close for shutdown.
func RegisterCloser(closer io.Closer) {
	RegisterCleanup(func() {
		_ = closer.Close()
	})
}

// RunCleanup executes all queued actions, newest first, then empties the
// registry so a second invocation is a no-op.
func RunCleanup() {
	shutdown.mu.Lock()
	defer shutdown.mu.Unlock()

	for i := len(shutdown.actions) - 1; i >= 0; i-- {
		shutdown.actions[i]()
	}
	shutdown.actions = nil
}

// resetCleanup drops any queued actions without running them. Test helper.
func resetCleanup() {
	shutdown.mu.Lock()
	defer shutdown.mu.Unlock()
	shutdown.actions = nil
}
