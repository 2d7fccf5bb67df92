package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumenhq/lumen-go/cmd/lumen/commands"
	"github.com/lumenhq/lumen-go/logger"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen - metadata catalog command line client",
	Long: `Lumen - command line client for the Lumen metadata catalog.

Browse, create and enrich catalog assets from the terminal.

Available commands:
  config  - Manage Lumen client configuration
  search  - Search catalog assets
  get     - Fetch one asset by GUID or qualified name
  suggest - Suggest metadata for an asset from similar assets
  apply   - Create or update assets from a YAML manifest

Examples:
  lumen config show                       # Show current configuration
  lumen search --type Table --name ORDERS # Find tables named ORDERS
  lumen get 9a41c8a2-...                  # Fetch an asset by GUID
  lumen suggest 9a41c8a2-... --apply      # Enrich an asset with suggestions
  lumen apply -f assets.yaml              # Bulk-load assets from a manifest`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := commands.SetupLogger(verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.GetCmd)
	rootCmd.AddCommand(commands.SuggestCmd)
	rootCmd.AddCommand(commands.ApplyCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
