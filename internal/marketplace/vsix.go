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
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/rizome-dev/fabsetup/pkg/core"
)

// binaryEntry is where the VSIX packages the server executable
const binaryEntry = "extension/server/" + BinaryName

// ExtractServerBinary extracts the modeling server executable from a VSIX
// archive (a zip) to destPath
func ExtractServerBinary(vsixPath, destPath string) error {
	r, err := zip.OpenReader(vsixPath)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBadArchive, err)
	}
	defer r.Close()

	for _, file := range r.File {
		if err := validateEntryName(file.Name); err != nil {
			return err
		}

		if file.Name != binaryEntry {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
		if err != nil {
			return err
		}
		defer out.Close()

		if _, err := io.Copy(out, rc); err != nil {
			return err
		}

		return nil
	}

	return fmt.Errorf("%w: %s not present in VSIX", core.ErrBinaryUnavailable, binaryEntry)
}

// validateEntryName rejects archive entries that would escape the extraction
// root via traversal or absolute paths
func validateEntryName(name string) error {
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") {
		return fmt.Errorf("%w: absolute entry path: %s", core.ErrBadArchive, name)
	}

	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: invalid entry path: %s", core.ErrBadArchive, name)
	}

	return nil
}
