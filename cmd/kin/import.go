package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the family graph from a JSON export",
		Long: `Reads a JSON document in the export shape and replaces the whole
graph with it. The document is normalized on the way in: unknown enum
values fold to unknown, people with empty names are dropped, and edges
and spouse links are re-deduplicated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			snap := entities.EmptySnapshot()
			if err := json.Unmarshal(data, snap); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			return withFamily(cmd.Context(), func(family *services.FamilyService) error {
				family.Restore(snap)
				cur := family.Snapshot()
				fmt.Printf("Imported %d people, %d edges, %d spouse links\n",
					len(cur.People), len(cur.Edges), len(cur.Spouses))
				return nil
			})
		},
	}
}
