package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	engineURL string
	farmID    uint64
	verbose   bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "farmctl",
		Short: "FarmChain CLI - Inspect and administer the FarmChain engine",
		Long: `FarmChain CLI provides commands to inspect the item catalog, preview
withdrawal taxes, look at farms held by the engine and replay action
batches offline.

Read commands talk to a running engine over HTTP. Seeding commands
write to the engine database directly and are meant for local
development.

Examples:
  farmctl catalog list
  farmctl catalog item "Sunflower Seed"
  farmctl tax 250
  farmctl farm show --farm 42
  farmctl farm create --farm 42 --owner 0x71ce81cb65cbc9a04ba4d0d95b344c2cbf7dc223
  farmctl replay batch.json --fresh
  farmctl config set-farm --farm 42
  farmctl health`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&engineURL, "engine", "",
		"Engine base URL (default from user config or http://localhost:8880)")
	rootCmd.PersistentFlags().Uint64Var(&farmID, "farm", 0,
		"Farm ID (falls back to the user config default)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewTaxCommand())
	rootCmd.AddCommand(NewFarmCommand())
	rootCmd.AddCommand(NewReplayCommand())
	rootCmd.AddCommand(NewHealthCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
