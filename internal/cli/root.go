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
	"os"
	"path/filepath"

	"github.com/rizome-dev/fabsetup/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd returns the root command
func RootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "fabsetup",
		Short: "Fabric & Power BI MCP server setup for Claude Desktop",
		Long: `fabsetup provisions the Fabric & Power BI MCP servers for Claude Desktop:
it installs their dependencies, fetches the prebuilt modeling server where
available, and merges the launch entries into claude_desktop_config.json.

The configured servers authenticate through the Azure CLI's cached credential;
run 'az login' before using them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(configFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.fabsetup/config.yaml)")

	rootCmd.AddCommand(
		SetupCmd(),
		StatusCmd(),
		ListCmd(),
		RemoveCmd(),
	)

	return rootCmd
}

// initConfig loads the tool's own configuration via viper
func initConfig(configFile string) error {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		setupDir := filepath.Join(home, ".fabsetup")
		if err := utils.EnsureDir(setupDir); err != nil {
			return err
		}

		viper.AddConfigPath(setupDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FABSETUP")
	viper.AutomaticEnv()

	// Read config if it exists
	_ = viper.ReadInConfig()

	return nil
}
