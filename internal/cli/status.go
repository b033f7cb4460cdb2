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

	"github.com/charmbracelet/lipgloss"
	"github.com/rizome-dev/fabsetup/internal/config"
	"github.com/rizome-dev/fabsetup/internal/install"
	"github.com/spf13/cobra"
)

// CheckStatus is one line of the doctor report
type CheckStatus struct {
	Name   string
	OK     bool
	Detail string
}

// StatusCmd creates the status command
func StatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report prerequisite and server provisioning status",
		Long: `Checks the setup prerequisites (uv, the Azure CLI credential) and reports
which servers are installed and present in the Claude Desktop config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "claude-config", "", "override the Claude Desktop config path")

	return cmd
}

func runStatus(cmd *cobra.Command, configPath string) error {
	checks := collectChecks(cmd, configPath)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	fmt.Println(titleStyle.Render("fabsetup status"))
	fmt.Println()

	for _, check := range checks {
		mark := okStyle.Render("✓")
		if !check.OK {
			mark = failStyle.Render("✗")
		}
		line := fmt.Sprintf("%s %s", mark, check.Name)
		if check.Detail != "" {
			line += fmt.Sprintf(" - %s", check.Detail)
		}
		fmt.Println(line)
	}

	return nil
}

// collectChecks gathers every status line of the report
func collectChecks(cmd *cobra.Command, configPath string) []CheckStatus {
	var checks []CheckStatus

	// Prerequisites
	if uv, err := install.FindUV(); err == nil {
		checks = append(checks, CheckStatus{Name: "uv", OK: true, Detail: uv})
	} else {
		checks = append(checks, CheckStatus{Name: "uv", OK: false, Detail: "not found"})
	}

	if python, err := install.FindPython(); err == nil {
		checks = append(checks, CheckStatus{Name: "python", OK: true, Detail: python})
	} else {
		checks = append(checks, CheckStatus{Name: "python", OK: false, Detail: "not found"})
	}

	azure := install.CheckAzureAuth(cmd.Context())
	checks = append(checks, CheckStatus{
		Name:   "azure cli",
		OK:     azure == install.AzureOK,
		Detail: azure.String(),
	})

	// Tracked install state
	state, err := config.NewStateManager()
	if err != nil {
		checks = append(checks, CheckStatus{Name: "setup state", OK: false, Detail: err.Error()})
		return checks
	}

	// Assistant config entries
	merger := newMerger(configPath)
	entries, err := merger.Entries()
	if err != nil {
		checks = append(checks, CheckStatus{Name: "claude config", OK: false, Detail: err.Error()})
		entries = nil
	}

	for _, spec := range install.Catalog() {
		check := CheckStatus{Name: spec.Name}

		tracked, known := state.Server(spec.Name)
		_, configured := entries[spec.Name]

		switch {
		case known && tracked.Installed && configured:
			check.OK = true
			check.Detail = "installed and configured"
			if tracked.Source != "" {
				check.Detail += fmt.Sprintf(" (%s)", tracked.Source)
			}
		case known && tracked.Installed:
			check.Detail = "installed but missing from claude config (run setup)"
		case configured:
			check.Detail = "configured but install not tracked (run setup)"
		default:
			check.Detail = "not provisioned"
		}

		checks = append(checks, check)
	}

	return checks
}
