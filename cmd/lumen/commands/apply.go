package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/batch"
)

var (
	applyFile          string
	applyDryRun        bool
	applyReplaceTags   bool
	applyCaptureErrors bool
)

// ApplyCmd represents the apply command
var ApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create or update assets from a YAML manifest",
	Long: `apply — Bulk-load assets from a YAML manifest.

The manifest lists assets with their type and the parent identifiers the
type requires. Assets are saved in batches; existing assets (matched by
qualified name) are updated, the rest created.

Manifest example:

  assets:
    - type: Database
      name: ANALYTICS
      connection: default/snowflake/1700000000
    - type: Table
      name: ORDERS
      schema: default/snowflake/1700000000/ANALYTICS/PUBLIC
      description: Fact table for orders
      owners: [ana]
    - type: Column
      name: ORDER_ID
      parent_type: Table
      parent: default/snowflake/1700000000/ANALYTICS/PUBLIC/ORDERS
      order: 1

Examples:
  lumen apply -f assets.yaml
  lumen apply -f assets.yaml --dry-run`,
	RunE: runApply,
}

func init() {
	ApplyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "Manifest file to apply (required)")
	ApplyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Build and validate assets without saving")
	ApplyCmd.Flags().BoolVar(&applyReplaceTags, "replace-tags", false, "Replace existing tags instead of leaving them untouched")
	ApplyCmd.Flags().BoolVar(&applyCaptureErrors, "keep-going", false, "Continue past failed batches and report them at the end")
	ApplyCmd.MarkFlagRequired("file")
}

// manifest is the YAML document apply consumes
type manifest struct {
	Assets []assetSpec `yaml:"assets"`
}

// assetSpec is one asset entry in the manifest
type assetSpec struct {
	Type         string   `yaml:"type"`
	Name         string   `yaml:"name"`
	Connector    string   `yaml:"connector"`     // Connection
	Connection   string   `yaml:"connection"`    // Database
	Database     string   `yaml:"database"`      // Schema
	Schema       string   `yaml:"schema"`        // Table, View, MaterializedView
	Parent       string   `yaml:"parent"`        // Column
	ParentType   string   `yaml:"parent_type"`   // Column
	Order        int      `yaml:"order"`         // Column
	GlossaryGuid string   `yaml:"glossary_guid"` // GlossaryTerm, GlossaryCategory
	Description  string   `yaml:"description"`
	Owners       []string `yaml:"owners"`
	Certificate  string   `yaml:"certificate"`
}

// build turns a manifest entry into a client-side asset
func (s assetSpec) build() (assets.Asset, error) {
	var (
		a   assets.Asset
		err error
	)
	switch s.Type {
	case assets.TypeConnection:
		a, err = assets.NewConnection(s.Name, s.Connector)
	case assets.TypeDatabase:
		a, err = assets.NewDatabase(s.Name, s.Connection)
	case assets.TypeSchema:
		a, err = assets.NewSchema(s.Name, s.Database)
	case assets.TypeTable:
		a, err = assets.NewTable(s.Name, s.Schema)
	case assets.TypeView:
		a, err = assets.NewView(s.Name, s.Schema)
	case assets.TypeMaterializedView:
		a, err = assets.NewMaterializedView(s.Name, s.Schema)
	case assets.TypeColumn:
		a, err = assets.NewColumn(s.Name, s.ParentType, s.Parent, s.Order)
	case assets.TypeGlossary:
		a, err = assets.NewGlossary(s.Name)
	case assets.TypeGlossaryTerm:
		a, err = assets.NewGlossaryTerm(s.Name, s.GlossaryGuid)
	case assets.TypeGlossaryCategory:
		a, err = assets.NewGlossaryCategory(s.Name, s.GlossaryGuid)
	case "":
		return nil, fmt.Errorf("asset entry missing type")
	default:
		return nil, fmt.Errorf("unsupported asset type %q", s.Type)
	}
	if err != nil {
		return nil, err
	}

	attrs := a.BaseAttributes()
	if s.Description != "" {
		attrs.UserDescription = s.Description
	}
	if len(s.Owners) > 0 {
		attrs.OwnerUsers = s.Owners
	}
	if s.Certificate != "" {
		attrs.CertificateStatus = assets.CertificateStatus(s.Certificate)
	}
	return a, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(applyFile)
	if err != nil {
		return fmt.Errorf("failed to read manifest %s: %w", applyFile, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse manifest %s: %w", applyFile, err)
	}
	if len(m.Assets) == 0 {
		return fmt.Errorf("manifest %s contains no assets", applyFile)
	}

	built := make([]assets.Asset, 0, len(m.Assets))
	for i, spec := range m.Assets {
		a, err := spec.build()
		if err != nil {
			return fmt.Errorf("manifest entry %d (%s %q): %w", i+1, spec.Type, spec.Name, err)
		}
		built = append(built, a)
	}

	if applyDryRun {
		pterm.Success.Printf("Manifest valid: %d assets would be saved\n", len(built))
		return printAssetTable(built)
	}

	c, cfg, err := newClient()
	if err != nil {
		return err
	}

	batchOpts := []batch.Option{batch.WithMaxSize(cfg.Batch.MaxSize)}
	if applyReplaceTags {
		batchOpts = append(batchOpts, batch.WithReplaceTags())
	}
	if applyCaptureErrors {
		batchOpts = append(batchOpts, batch.WithCaptureFailures())
	}

	b, err := batch.NewBatch(c, batchOpts...)
	if err != nil {
		return err
	}

	for _, a := range built {
		if err := b.Add(cmd.Context(), a); err != nil {
			return err
		}
	}
	if err := b.Flush(cmd.Context()); err != nil {
		return err
	}

	stats := b.Stats()
	pterm.Success.Printf("Applied %s: %d created, %d updated, %d unchanged\n",
		applyFile, stats.Created, stats.Updated, stats.Skipped)

	if failures := b.Failures(); len(failures) > 0 {
		pterm.Warning.Printf("%d batches failed (%d assets)\n", len(failures), stats.Failed)
		for _, f := range failures {
			pterm.Warning.Printf("  %d assets: %v\n", len(f.Assets), f.Err)
		}
		os.Exit(1)
	}
	return nil
}
