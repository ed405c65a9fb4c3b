package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

var validExportFormats = []string{"json", "csv"}

func newExportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the family graph",
		Long: `Exports the full graph. JSON output uses the same document shape the
JSON storage backend persists, so it round-trips through 'kin import'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !contains(validExportFormats, format) {
				return fmt.Errorf("invalid format %q, valid formats: %v", format, validExportFormats)
			}
			return withFamily(cmd.Context(), func(family *services.FamilyService) error {
				return runExport(family.Snapshot(), format, output)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func runExport(snap *entities.Snapshot, format, output string) (err error) {
	var w io.Writer = os.Stdout
	if output != "" {
		f, ferr := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if ferr != nil {
			return fmt.Errorf("creating file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	switch format {
	case "json":
		err = exportJSON(w, snap)
	case "csv":
		err = exportCSV(w, snap)
	}
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if output != "" {
		fmt.Printf("Exported %d people to %s\n", len(snap.People), output)
	}
	return nil
}

func exportJSON(w io.Writer, snap *entities.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

func exportCSV(w io.Writer, snap *entities.Snapshot) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "name", "gender", "blood_type", "birth_date", "note", "spouse_id", "parent_ids"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range snap.People {
		var parents []string
		for _, e := range snap.Edges {
			if e.ChildID == p.ID {
				parents = append(parents, e.ParentID)
			}
		}
		row := []string{
			p.ID,
			p.Name,
			string(p.Gender),
			string(p.BloodType),
			p.BirthDate,
			p.Note,
			snap.SpouseOf(p.ID),
			joinIDs(parents),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ";"
		}
		out += id
	}
	return out
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
