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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rizome-dev/fabsetup/internal/utils"
	"github.com/rizome-dev/fabsetup/pkg/core"
)

const (
	// ExtensionID is the marketplace identifier of the modeling server extension
	ExtensionID = "analysis-services.powerbi-modeling-mcp"

	// BinaryName is the server executable packaged inside the VSIX
	BinaryName = "powerbi-modeling-mcp.exe"

	defaultGalleryURL  = "https://marketplace.visualstudio.com/_apis/public/gallery/extensionquery"
	defaultDownloadFmt = "https://marketplace.visualstudio.com/_apis/public/gallery/publishers/" +
		"analysis-services/vsextensions/powerbi-modeling-mcp/%s/vspackage?targetPlatform=win32-x64"

	userAgent = "fabsetup/1.0"
)

// Client fetches the prebuilt modeling server from the VS Marketplace
type Client struct {
	client      *http.Client
	galleryURL  string
	downloadFmt string
}

// NewClient creates a marketplace client
func NewClient() *Client {
	return &Client{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		galleryURL:  defaultGalleryURL,
		downloadFmt: defaultDownloadFmt,
	}
}

// galleryQuery is the extensionquery request payload
type galleryQuery struct {
	Filters []galleryFilter `json:"filters"`
	Flags   int             `json:"flags"`
}

type galleryFilter struct {
	Criteria []galleryCriterion `json:"criteria"`
}

type galleryCriterion struct {
	FilterType int    `json:"filterType"`
	Value      string `json:"value"`
}

// galleryResponse is the subset of the extensionquery response we read
type galleryResponse struct {
	Results []struct {
		Extensions []struct {
			Versions []struct {
				Version string `json:"version"`
			} `json:"versions"`
		} `json:"extensions"`
	} `json:"results"`
}

// LatestVersion queries the gallery for the newest published version of the
// modeling server extension
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	payload, err := json.Marshal(galleryQuery{
		Filters: []galleryFilter{
			{Criteria: []galleryCriterion{{FilterType: 7, Value: ExtensionID}}},
		},
		Flags: 529,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.galleryURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json;api-version=3.0-preview.1")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: gallery query: %v", core.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gallery query returned %s", core.ErrDownloadFailed, resp.Status)
	}

	var result galleryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse gallery response: %w", err)
	}

	if len(result.Results) == 0 || len(result.Results[0].Extensions) == 0 ||
		len(result.Results[0].Extensions[0].Versions) == 0 {
		return "", fmt.Errorf("%w: extension %s not found in gallery", core.ErrBinaryUnavailable, ExtensionID)
	}

	return result.Results[0].Extensions[0].Versions[0].Version, nil
}

// DownloadVSIX downloads the VSIX package for a version to the given path
func (c *Client) DownloadVSIX(ctx context.Context, version, dest string) error {
	url := fmt.Sprintf(c.downloadFmt, version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: download returned %s", core.ErrDownloadFailed, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

// newTempDir creates a scratch directory for a VSIX download. Removal is
// also registered with the shutdown cleanup so an interrupt, which skips
// deferred calls, still leaves nothing behind.
func newTempDir() (string, error) {
	dir, err := os.MkdirTemp("", "fabsetup-vsix-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	utils.RegisterRemoval(dir)
	return dir, nil
}

// FetchServerBinary ensures the modeling server executable is present under
// binDir, downloading and extracting the latest VSIX when needed. An existing
// binary short-circuits the fetch.
func (c *Client) FetchServerBinary(ctx context.Context, binDir string) (string, error) {
	exePath := filepath.Join(binDir, BinaryName)
	if utils.FileExists(exePath) {
		return exePath, nil
	}

	version, err := c.LatestVersion(ctx)
	if err != nil {
		return "", err
	}

	tempDir, err := newTempDir()
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tempDir)

	vsixPath := filepath.Join(tempDir, "extension.vsix")
	if err := c.DownloadVSIX(ctx, version, vsixPath); err != nil {
		return "", err
	}

	if err := utils.EnsureDir(binDir); err != nil {
		return "", err
	}

	if err := ExtractServerBinary(vsixPath, exePath); err != nil {
		return "", err
	}

	return exePath, nil
}
