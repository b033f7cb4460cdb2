package cli

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
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rizome-dev/fabsetup/internal/install"
	"github.com/spf13/cobra"
)

// ListCmd creates the list command
func ListCmd() *cobra.Command {
	var configPath string
	var showAll bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List MCP server entries in the Claude Desktop config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(configPath, showAll)
		},
	}

	cmd.Flags().StringVar(&configPath, "claude-config", "", "override the Claude Desktop config path")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "include entries not managed by fabsetup")

	return cmd
}

func runList(configPath string, showAll bool) error {
	merger := newMerger(configPath)

	entries, err := merger.Entries()
	if err != nil {
		return err
	}

	managed := map[string]bool{}
	for _, name := range install.ManagedNames() {
		managed[name] = true
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		if showAll || managed[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		fmt.Println("No MCP server entries found. Run 'fabsetup setup' first.")
		return nil
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	nameStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("MCP servers in %s", merger.Path())))
	fmt.Println()

	for _, name := range names {
		entry := entries[name]
		tag := ""
		if !managed[name] {
			tag = dimStyle.Render(" (unmanaged)")
		}
		fmt.Printf("%s%s\n", nameStyle.Render(name), tag)
		fmt.Printf("  %s %s\n", entry.Command, strings.Join(entry.Args, " "))
	}

	return nil
}
