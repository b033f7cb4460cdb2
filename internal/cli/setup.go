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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/rizome-dev/fabsetup/internal/config"
	"github.com/rizome-dev/fabsetup/internal/install"
	"github.com/rizome-dev/fabsetup/internal/marketplace"
	"github.com/rizome-dev/fabsetup/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// setupOptions carries the setup command's flags
type setupOptions struct {
	rootDir    string
	configPath string
	assumeYes  bool
	skipBinary bool
}

// SetupCmd creates the setup command
func SetupCmd() *cobra.Command {
	var opts setupOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install the MCP servers and configure Claude Desktop",
		Long: `Provisions the Fabric & Power BI MCP servers:

- Checks for uv and the Azure CLI credential
- Syncs fabric-core dependencies with uv
- Creates the translation-audit virtual environment
- Locates or downloads the prebuilt Power BI modeling server (Windows)
- Merges the launch entries into claude_desktop_config.json

Re-running setup with the same inputs rewrites the config to identical
content; entries for other MCP servers are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.rootDir, "dir", "", "server source root (default: directory of this executable)")
	cmd.Flags().StringVar(&opts.configPath, "claude-config", "", "override the Claude Desktop config path")
	cmd.Flags().BoolVarP(&opts.assumeYes, "yes", "y", false, "provision all servers without the interactive picker")
	cmd.Flags().BoolVar(&opts.skipBinary, "skip-binary", false, "never download the modeling server from the marketplace")

	return cmd
}

func runSetup(ctx context.Context, opts setupOptions) error {
	fmt.Println("🚀 Fabric & Power BI MCP setup")
	fmt.Println()

	root, err := resolveRoot(opts.rootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve server root: %w", err)
	}

	// 1. uv is required for fabric-core
	fmt.Println("📋 Step 1: Checking for uv...")
	uv, err := install.FindUV()
	if err != nil {
		return fmt.Errorf("%w: install it from https://docs.astral.sh/uv/getting-started/installation/", err)
	}
	fmt.Printf("✅ Found: %s\n\n", uv)

	// 2. Azure credential probe; missing login is a warning, never fatal
	fmt.Println("🔑 Step 2: Checking Azure CLI authentication...")
	switch install.CheckAzureAuth(ctx) {
	case install.AzureOK:
		fmt.Println("✅ Azure auth OK")
	case install.AzureNotLoggedIn:
		fmt.Println("⚠️  Not logged in. Run 'az login' before using fabric-core tools.")
	default:
		fmt.Println("⚠️  Azure CLI not found. Install: https://aka.ms/installazurecliwindows")
		fmt.Println("   Run 'az login' before using fabric-core tools.")
	}
	fmt.Println()

	// 3. Server selection
	selected, err := chooseServers(opts.assumeYes)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Println("Nothing selected, exiting.")
		return nil
	}

	state, err := config.NewStateManager()
	if err != nil {
		return fmt.Errorf("failed to open setup state: %w", err)
	}

	installer := install.NewInstaller(root, uv, state)

	// Launch specs are collected only for servers whose install step
	// succeeded, so a failed install never produces a config entry.
	entries := map[string]core.LaunchSpec{}

	if selectedContains(selected, install.ServerFabricCore) {
		fmt.Println("📦 Step 3: Installing fabric-core dependencies (may take a minute)...")
		if err := installer.InstallFabricCore(ctx); err != nil {
			return err
		}
		entries[install.ServerFabricCore] = install.FabricCoreLaunch(uv, root)
		fmt.Println("✅ Done")
		fmt.Println()
	}

	if selectedContains(selected, install.ServerTranslationAudit) {
		fmt.Println("📦 Step 4: Setting up translation-audit virtual environment...")
		if _, err := installer.InstallTranslationAudit(ctx); err != nil {
			return err
		}
		entries[install.ServerTranslationAudit] = install.TranslationAuditLaunch(root)
		fmt.Println("✅ Done")
		fmt.Println()
	}

	if selectedContains(selected, install.ServerModeling) {
		fmt.Println("🔍 Step 5: Locating powerbi-modeling MCP server...")
		exePath := resolveModelingBinary(ctx, root, opts.skipBinary, state)
		if exePath != "" {
			entries[install.ServerModeling] = install.ModelingLaunch(exePath)
		}
		fmt.Println()
	}

	// Final step: one merge for everything that succeeded
	fmt.Println("💾 Writing Claude Desktop config...")
	merger := newMerger(opts.configPath)
	if err := merger.Upsert(entries); err != nil {
		return err
	}
	fmt.Printf("✅ Written: %s\n", merger.Path())

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("\n🎉 Setup complete! Configured: %s\n", strings.Join(names, ", "))
	fmt.Println("Restart Claude Desktop to apply.")
	if !selectedContains(names, install.ServerModeling) && selectedContains(selected, install.ServerModeling) {
		fmt.Println("Note: powerbi-modeling skipped (install the VS Code extension or retry on Windows).")
	}

	return nil
}

// resolveModelingBinary finds or fetches the prebuilt modeling server. The
// server is optional: any failure here skips it with a notice.
func resolveModelingBinary(ctx context.Context, root string, skipDownload bool, state *config.StateManager) string {
	if exe, ok := marketplace.FindInVSCode(); ok {
		fmt.Printf("✅ Found in VS Code extensions: %s\n", exe)
		_ = state.SetServer(core.ServerState{
			Name:       install.ServerModeling,
			Installed:  true,
			Source:     "vscode-extension",
			BinaryPath: exe,
		})
		return exe
	}

	if runtime.GOOS != "windows" {
		fmt.Println("⚠️  Skipping: the modeling server binary is Windows-only.")
		return ""
	}

	if skipDownload {
		fmt.Println("⚠️  Skipping download (--skip-binary).")
		return ""
	}

	fmt.Println("Not found in VS Code. Downloading from marketplace...")
	client := marketplace.NewClient()
	exe, err := client.FetchServerBinary(ctx, filepath.Join(root, "bin"))
	if err != nil {
		fmt.Printf("⚠️  Download failed (%v). Skipping powerbi-modeling.\n", err)
		_ = state.SetServer(core.ServerState{Name: install.ServerModeling, Installed: false})
		return ""
	}

	fmt.Printf("✅ Saved: %s\n", exe)
	_ = state.SetServer(core.ServerState{
		Name:       install.ServerModeling,
		Installed:  true,
		Source:     "marketplace",
		BinaryPath: exe,
	})
	return exe
}

// chooseServers picks the servers to provision. Interactive when stdout is a
// terminal and --yes was not given; otherwise everything.
func chooseServers(assumeYes bool) ([]string, error) {
	if assumeYes || !term.IsTerminal(int(os.Stdout.Fd())) {
		return install.ManagedNames(), nil
	}
	return pickServers(install.Catalog())
}

// resolveRoot determines the server source root: flag, then tool config, then
// the executable's own directory
func resolveRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}

	if configured := viper.GetString("server_root"); configured != "" {
		return filepath.Abs(configured)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// newMerger builds a config merger for Claude Desktop, honoring the override
func newMerger(override string) *config.Merger {
	translator := config.NewClaudeTranslator()
	if override != "" {
		return config.NewMergerWithPath(translator, override)
	}
	return config.NewMerger(translator)
}

func selectedContains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
