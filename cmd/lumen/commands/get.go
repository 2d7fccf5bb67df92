package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenhq/lumen-go/assets"
)

var (
	getQualifiedName string
	getType          string
	getJSON          bool
)

// GetCmd represents the get command
var GetCmd = &cobra.Command{
	Use:   "get [guid]",
	Short: "Fetch one asset by GUID or qualified name",
	Long: `get — Fetch a single catalog asset.

Pass a GUID as the argument, or use --type with --qualified-name.

Examples:
  lumen get 9a41c8a2-5fae-4f8b-8f5e-2c4d1a7b9e01
  lumen get --type Table --qualified-name default/snowflake/1700000000/DB/SCH/ORDERS`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func init() {
	GetCmd.Flags().StringVar(&getQualifiedName, "qualified-name", "", "Qualified name (requires --type)")
	GetCmd.Flags().StringVar(&getType, "type", "", "Asset type for --qualified-name lookup")
	GetCmd.Flags().BoolVar(&getJSON, "json", false, "Output raw JSON instead of a table")
}

func runGet(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}

	var a assets.Asset
	switch {
	case len(args) == 1:
		a, err = c.GetByGuid(cmd.Context(), args[0])
	case getQualifiedName != "":
		if getType == "" {
			return fmt.Errorf("--qualified-name requires --type")
		}
		a, err = c.GetByQualifiedName(cmd.Context(), getType, getQualifiedName)
	default:
		return fmt.Errorf("pass a GUID or --type with --qualified-name")
	}
	if err != nil {
		return err
	}

	if getJSON {
		return printJSON(a)
	}
	return printAssetDetail(a)
}
