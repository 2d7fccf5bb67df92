package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/lumenhq/lumen-go/assets"
)

// printJSON renders any value as indented JSON
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printAssetTable renders assets as a pterm table
func printAssetTable(list []assets.Asset) error {
	rows := pterm.TableData{{"TYPE", "NAME", "QUALIFIED NAME", "GUID"}}
	for _, a := range list {
		rows = append(rows, []string{
			a.Ref().TypeName,
			assets.Name(a),
			assets.QualifiedName(a),
			a.Ref().Guid,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// printAssetDetail renders one asset for human reading
func printAssetDetail(a assets.Asset) error {
	attrs := a.BaseAttributes()
	rows := pterm.TableData{
		{"Type", a.Ref().TypeName},
		{"Name", attrs.Name},
		{"Qualified name", attrs.QualifiedName},
		{"GUID", a.Ref().Guid},
	}
	if a.Ref().Status != "" {
		rows = append(rows, []string{"Status", string(a.Ref().Status)})
	}
	if attrs.Description != "" {
		rows = append(rows, []string{"Description", attrs.Description})
	}
	if attrs.UserDescription != "" {
		rows = append(rows, []string{"User description", attrs.UserDescription})
	}
	if len(attrs.OwnerUsers) > 0 {
		rows = append(rows, []string{"Owners", fmt.Sprintf("%v", attrs.OwnerUsers)})
	}
	if attrs.CertificateStatus != "" {
		rows = append(rows, []string{"Certificate", string(attrs.CertificateStatus)})
	}
	if len(a.Ref().Tags) > 0 {
		rows = append(rows, []string{"Tags", fmt.Sprintf("%v", a.Ref().Tags)})
	}
	return pterm.DefaultTable.WithData(rows).Render()
}
