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

import "errors"

var (
	// Environment errors
	ErrUVNotFound     = errors.New("uv not found")
	ErrPythonNotFound = errors.New("python not found")
	ErrAzureNotFound  = errors.New("azure cli not found")

	// Install errors
	ErrInstallFailed  = errors.New("dependency install failed")
	ErrServerUnknown  = errors.New("unknown server")
	ErrServerNotReady = errors.New("server not provisioned")

	// Fetch errors
	ErrDownloadFailed    = errors.New("download failed")
	ErrBinaryUnavailable = errors.New("server binary unavailable")
	ErrBadArchive        = errors.New("invalid archive")

	// Config errors
	ErrConfigMalformed = errors.New("assistant config is not valid JSON")
)
