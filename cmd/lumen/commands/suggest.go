package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/client"
	"github.com/lumenhq/lumen-go/suggestions"
)

var (
	suggestApply         bool
	suggestAllowMultiple bool
	suggestMax           int
	suggestOtherTypes    []string
	suggestSameConn      bool
	suggestJSON          bool
)

// SuggestCmd represents the suggest command
var SuggestCmd = &cobra.Command{
	Use:   "suggest <guid>",
	Short: "Suggest metadata for an asset from similar assets",
	Long: `suggest — Infer descriptions, owners, tags and glossary terms for an
asset from assets elsewhere in the catalog that carry the same name.

Without --apply the candidates are only displayed. With --apply the
top-ranked values are written onto the asset and saved back.

Examples:
  lumen suggest 9a41c8a2-...                      # Show candidates
  lumen suggest 9a41c8a2-... --apply              # Apply top candidates
  lumen suggest 9a41c8a2-... --apply --allow-multiple
  lumen suggest 9a41c8a2-... --other-type View`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	SuggestCmd.Flags().BoolVar(&suggestApply, "apply", false, "Apply the top suggestions to the asset")
	SuggestCmd.Flags().BoolVar(&suggestAllowMultiple, "allow-multiple", false, "Apply all candidates for owners, tags and terms, not just the top one")
	SuggestCmd.Flags().IntVar(&suggestMax, "max", 0, "Candidates per kind (default from config)")
	SuggestCmd.Flags().StringSliceVar(&suggestOtherTypes, "other-type", nil, "Also draw candidates from this asset type (repeatable)")
	SuggestCmd.Flags().BoolVar(&suggestSameConn, "same-connection", false, "Only draw candidates from the asset's own connection")
	SuggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Output raw JSON instead of tables")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	c, cfg, err := newClient()
	if err != nil {
		return err
	}

	a, err := c.GetByGuid(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	maxPerKind := cfg.Suggestions.MaxSuggestions
	if suggestMax > 0 {
		maxPerKind = suggestMax
	}

	finder := suggestions.FinderFor(a).
		IncludeAll().
		MaxSuggestions(maxPerKind)
	for _, other := range suggestOtherTypes {
		finder.WithOtherType(other)
	}
	if suggestSameConn {
		finder.WithinSameConnection()
	}

	resp, err := finder.Get(cmd.Context(), c)
	if err != nil {
		return err
	}

	if suggestJSON {
		return printJSON(resp)
	}
	if resp.IsEmpty() {
		pterm.Info.Printf("No suggestions found for %s %q\n", a.Ref().TypeName, assets.Name(a))
		return nil
	}

	printSuggestionSection("System descriptions", resp.SystemDescriptions)
	printSuggestionSection("User descriptions", resp.UserDescriptions)
	printSuggestionSection("Owners", resp.OwnerUsers)
	printSuggestionSection("Owner groups", resp.OwnerGroups)
	printSuggestionSection("Tags", resp.Tags)
	printSuggestionSection("Terms", resp.Terms)

	if !suggestApply {
		pterm.Info.Println("Re-run with --apply to write the top suggestions onto the asset")
		return nil
	}

	allowMultiple := suggestAllowMultiple || cfg.Suggestions.AllowMultiple
	applied := resp.ApplyWithOptions(a, suggestions.ApplyOptions{AllowMultiple: allowMultiple})
	if !applied.Any() {
		pterm.Info.Println("Nothing to apply")
		return nil
	}

	if _, err := c.Save(cmd.Context(), []assets.Asset{a}, replaceOptions(applied)...); err != nil {
		return fmt.Errorf("failed to save applied suggestions: %w", err)
	}
	pterm.Success.Printf("Applied suggestions to %s %q\n", a.Ref().TypeName, assets.Name(a))
	return nil
}

// replaceOptions enables tag/term replacement only for the kinds the
// suggestions actually wrote, so untouched kinds keep their server state.
func replaceOptions(applied suggestions.Applied) []client.SaveOption {
	var opts []client.SaveOption
	if applied.Tags {
		opts = append(opts, client.WithReplaceTags())
	}
	if applied.Terms {
		opts = append(opts, client.WithReplaceTerms())
	}
	return opts
}

func printSuggestionSection(title string, items []suggestions.Suggestion) {
	if len(items) == 0 {
		return
	}
	rows := pterm.TableData{{title, "COUNT"}}
	for _, item := range items {
		rows = append(rows, []string{item.Value, fmt.Sprintf("%d", item.Count)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Println()
}
