package config

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
	"encoding/json"
	"fmt"
	"os"

	"github.com/rizome-dev/fabsetup/internal/utils"
	"github.com/rizome-dev/fabsetup/pkg/core"
)

const mcpServersKey = "mcpServers"

// Merger upserts server entries into an assistant's JSON config file while
// preserving everything else in it. Unknown keys, both at the top level and
// inside mcpServers, are held as raw JSON so they round-trip untouched.
type Merger struct {
	translator core.AssistantTranslator
	path       string
}

// NewMerger creates a merger for the given assistant translator
func NewMerger(translator core.AssistantTranslator) *Merger {
	return &Merger{
		translator: translator,
		path:       translator.ConfigPath(),
	}
}

// NewMergerWithPath creates a merger that targets an explicit config path
func NewMergerWithPath(translator core.AssistantTranslator, path string) *Merger {
	return &Merger{
		translator: translator,
		path:       path,
	}
}

// Path returns the config file path this merger targets
func (m *Merger) Path() string {
	return m.path
}

// load reads the config file into a raw top-level map. A missing file yields
// an empty map; malformed JSON is an error.
func (m *Merger) load() (map[string]json.RawMessage, error) {
	data, err := utils.SafeReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrConfigMalformed, m.path, err)
	}

	return top, nil
}

// loadServers extracts the mcpServers mapping from the raw top-level map
func loadServers(top map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	servers := map[string]json.RawMessage{}
	if raw, ok := top[mcpServersKey]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return nil, fmt.Errorf("%w: mcpServers: %v", core.ErrConfigMalformed, err)
		}
	}
	return servers, nil
}

// write marshals the top-level map and atomically rewrites the config file.
// Go sorts map keys during marshaling, so repeated runs with the same inputs
// produce byte-identical output.
func (m *Merger) write(top map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := utils.WriteFileAtomic(m.path, data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Upsert merges the given launch specs into the config file, keyed by server
// name. Existing entries with the same name are replaced; everything else is
// preserved.
func (m *Merger) Upsert(entries map[string]core.LaunchSpec) error {
	top, err := m.load()
	if err != nil {
		return err
	}

	servers, err := loadServers(top)
	if err != nil {
		return err
	}

	for name, spec := range entries {
		entry, err := m.translator.TranslateEntry(spec)
		if err != nil {
			return fmt.Errorf("failed to translate entry for %s: %w", name, err)
		}

		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry for %s: %w", name, err)
		}
		servers[name] = raw
	}

	raw, err := json.Marshal(servers)
	if err != nil {
		return fmt.Errorf("failed to marshal server entries: %w", err)
	}
	top[mcpServersKey] = raw

	return m.write(top)
}

// Remove deletes the named entries from the config file. Names that are not
// present are ignored. Foreign entries are never touched.
func (m *Merger) Remove(names []string) error {
	top, err := m.load()
	if err != nil {
		return err
	}

	servers, err := loadServers(top)
	if err != nil {
		return err
	}

	for _, name := range names {
		delete(servers, name)
	}

	raw, err := json.Marshal(servers)
	if err != nil {
		return fmt.Errorf("failed to marshal server entries: %w", err)
	}
	top[mcpServersKey] = raw

	return m.write(top)
}

// Entries returns the current server entries decoded into Claude's format.
// Entries that don't decode (foreign shapes) are skipped.
func (m *Merger) Entries() (map[string]ClaudeMCPServer, error) {
	top, err := m.load()
	if err != nil {
		return nil, err
	}

	servers, err := loadServers(top)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]ClaudeMCPServer, len(servers))
	for name, raw := range servers {
		var entry ClaudeMCPServer
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		entries[name] = entry
	}

	return entries, nil
}
