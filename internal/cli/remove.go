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
	"strings"

	"github.com/rizome-dev/fabsetup/internal/config"
	"github.com/rizome-dev/fabsetup/internal/install"
	"github.com/rizome-dev/fabsetup/pkg/core"
	"github.com/spf13/cobra"
)

// RemoveCmd creates the remove command
func RemoveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "remove [server...]",
		Short: "Remove managed server entries from the Claude Desktop config",
		Long: `Removes entries from claude_desktop_config.json. Only servers managed by
fabsetup can be removed; all other entries are left untouched. With no
arguments, every managed entry is removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(configPath, args)
		},
	}

	cmd.Flags().StringVar(&configPath, "claude-config", "", "override the Claude Desktop config path")

	return cmd
}

func runRemove(configPath string, args []string) error {
	names := args
	if len(names) == 0 {
		names = install.ManagedNames()
	}

	for _, name := range names {
		if _, ok := install.FindSpec(name); !ok {
			return fmt.Errorf("%w: %s (managed servers: %s)",
				core.ErrServerUnknown, name, strings.Join(install.ManagedNames(), ", "))
		}
	}

	merger := newMerger(configPath)
	if err := merger.Remove(names); err != nil {
		return err
	}

	if state, err := config.NewStateManager(); err == nil {
		for _, name := range names {
			_ = state.ClearServer(name)
		}
	}

	fmt.Printf("Removed: %s\n", strings.Join(names, ", "))
	fmt.Println("Restart Claude Desktop to apply.")
	return nil
}
