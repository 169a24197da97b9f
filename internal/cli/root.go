// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TobiasForner/pkmt-sub000/internal/config"
	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/logger"
	"github.com/TobiasForner/pkmt-sub000/internal/ui"
)

var (
	// Global flags
	vaultName   string
	configPath  string
	verboseFlag bool

	// Resolved values
	cfg           *config.Config
	resolvedVault config.Vault
)

var rootCmd = &cobra.Command{
	Use:   "pkmt",
	Short: "pkmt - plain-text note conversion and tooling",
	Long: `pkmt converts notes between outline and conventional markdown dialects
(logseq, zk, obsidian), keeping links, embeds, properties and nesting intact.

It also maintains a mention index for backlink queries and files tasks from
a remote inbox into the vault.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verboseFlag)

		// Commands that work without config
		switch cmd.Name() {
		case "init", "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		// Commands that work without a vault
		switch cmd.Name() {
		case "convert-file", "vaults":
			return nil
		}

		resolvedVault, err = cfg.GetVault(vaultName)
		if err != nil {
			return fmt.Errorf("%w\n\nUse --vault <name> or set default_vault in %s", err, config.DefaultPath())
		}
		if _, err := os.Stat(resolvedVault.Path); os.IsNotExist(err) {
			return fmt.Errorf("vault not found: %s", resolvedVault.Path)
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
}

// getVault returns the resolved vault.
func getVault() config.Vault {
	return resolvedVault
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// vaultDialect returns the resolved vault's dialect, defaulting to logseq
// when the config leaves it unset.
func vaultDialect() document.Dialect {
	if resolvedVault.Dialect == "" {
		return document.Logseq
	}
	return document.Dialect(resolvedVault.Dialect)
}
