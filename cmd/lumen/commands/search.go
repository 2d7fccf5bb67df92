package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/lumenhq/lumen-go/search"
)

var (
	searchType     string
	searchName     string
	searchPrefix   string
	searchWildcard string
	searchLimit    int
	searchAll      bool
	searchJSON     bool
)

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search catalog assets",
	Long: `search — Search active catalog assets by type, name or qualified name.

Examples:
  lumen search --type Table --name ORDERS
  lumen search --type Column --qn-prefix default/snowflake/1700000000/
  lumen search --wildcard 'ORD*' --limit 50
  lumen search --type Table --json`,
	RunE: runSearch,
}

func init() {
	SearchCmd.Flags().StringVar(&searchType, "type", "", "Restrict to one asset type (e.g. Table, Column)")
	SearchCmd.Flags().StringVar(&searchName, "name", "", "Exact asset name")
	SearchCmd.Flags().StringVar(&searchPrefix, "qn-prefix", "", "Qualified name prefix")
	SearchCmd.Flags().StringVar(&searchWildcard, "wildcard", "", "Glob-style name pattern")
	SearchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results to show")
	SearchCmd.Flags().BoolVar(&searchAll, "include-deleted", false, "Include soft-deleted assets")
	SearchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output raw JSON instead of a table")
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}

	fs := search.NewFluentSearch().PageSize(searchLimit)
	if !searchAll {
		fs.Where(search.ActiveAssets())
	}
	if searchType != "" {
		fs.Where(search.ForType(searchType))
	}
	if searchName != "" {
		fs.Where(search.ByName(searchName))
	}
	if searchPrefix != "" {
		fs.Where(search.Prefix{Field: search.FieldQualifiedName, Value: searchPrefix})
	}
	if searchWildcard != "" {
		fs.Where(search.Wildcard{Field: search.FieldNameText, Value: searchWildcard})
	}
	fs.Sort(search.FieldName, search.SortAscending)

	resp, err := fs.Execute(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	list, err := resp.Assets()
	if err != nil {
		return fmt.Errorf("failed to decode results: %w", err)
	}

	if searchJSON {
		return printJSON(list)
	}

	if len(list) == 0 {
		pterm.Info.Println("No assets matched")
		return nil
	}
	if err := printAssetTable(list); err != nil {
		return err
	}
	pterm.Info.Printf("Showing %d of ~%d matching assets\n", len(list), resp.ApproximateCount)
	return nil
}
