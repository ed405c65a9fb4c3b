package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/infrastructure/render/svg"
)

func newTreeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Compute the tree layout",
		Long: `Computes display units, unit links, and positions for the whole
family graph. Prints a placement summary, or writes an SVG with --output.

Examples:
  kin tree
  kin tree --output family.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result := d.TreeHandler.HandleLayout()

				if output != "" {
					renderer := svg.NewRenderer(d.TreeHandler.Metrics())
					if err := os.WriteFile(output, renderer.Render(result.Layout), 0644); err != nil {
						return fmt.Errorf("writing %s: %w", output, err)
					}
					fmt.Printf("Wrote %s (%.0fx%.0f)\n", output, result.Layout.Width, result.Layout.Height)
					return nil
				}

				printLayout(result.Layout)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write an SVG file instead of printing")
	return cmd
}

func printLayout(t *entities.TreeLayout) {
	if len(t.Boxes) == 0 {
		fmt.Println("No people yet. Add one with 'kin person add'.")
		return
	}

	fmt.Printf("Canvas %.0fx%.0f, %d units, %d links\n\n", t.Width, t.Height, len(t.Boxes), len(t.Links))
	for _, b := range t.Boxes {
		label := b.A.Name
		if b.Kind == entities.UnitCouple && b.B != nil {
			label = b.A.Name + " ⇄ " + b.B.Name
		}
		fmt.Printf("  (%6.1f, %6.1f)  %-6s  %s\n", b.X, b.Y, b.Kind, label)
	}
}
