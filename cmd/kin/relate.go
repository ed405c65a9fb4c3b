package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRelateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relate <parent-id> <child-id>",
		Short: "Record a parent-child relationship",
		Long: `Records a directed parent→child edge between two people.

The edge is rejected silently when it would give the child more parents
than the policy allows, duplicate an existing edge, or make an ancestor
its own descendant.

Examples:
  kin relate 6d5c… 41aa…
  kin relate remove 6d5c… 41aa…`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if d.RelationshipHandler.HandleAddEdge(args[0], args[1]) {
					fmt.Printf("Related: %s -> %s\n", args[0], args[1])
				} else {
					fmt.Println("Nothing added: edge rejected (duplicate, parent cap, or cycle)")
				}
				return nil
			})
		},
	}

	cmd.AddCommand(newRelateRemoveCmd())
	return cmd
}

func newRelateRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <parent-id> <child-id>",
		Short: "Remove a parent-child relationship",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if d.RelationshipHandler.HandleRemoveEdge(args[0], args[1]) {
					fmt.Printf("Removed edge %s -> %s\n", args[0], args[1])
				} else {
					fmt.Println("Nothing removed: no such edge")
				}
				return nil
			})
		},
	}
}
