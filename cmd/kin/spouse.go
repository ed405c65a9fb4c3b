package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSpouseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spouse <person-id> <person-id>",
		Short: "Link two people as spouses",
		Long: `Links two people as spouses. Under the monogamy policy the link is
rejected silently when either person already has a spouse.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if d.RelationshipHandler.HandleAddSpouse(args[0], args[1]) {
					fmt.Printf("Linked spouses: %s <-> %s\n", args[0], args[1])
				} else {
					fmt.Println("Nothing added: link rejected (duplicate or existing spouse)")
				}
				return nil
			})
		},
	}

	cmd.AddCommand(newSpouseRemoveCmd())
	return cmd
}

func newSpouseRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <person-id> <person-id>",
		Short: "Remove a spouse link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if d.RelationshipHandler.HandleRemoveSpouse(args[0], args[1]) {
					fmt.Printf("Removed spouse link %s <-> %s\n", args[0], args[1])
				} else {
					fmt.Println("Nothing removed: no such link")
				}
				return nil
			})
		},
	}
}
