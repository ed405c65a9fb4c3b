package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

type personFlags struct {
	gender    string
	bloodType string
	birthDate string
	photo     string
	note      string
}

func (f *personFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.gender, "gender", "g", "unknown", "Gender (male, female, other, unknown)")
	cmd.Flags().StringVarP(&f.bloodType, "blood", "b", "unknown", "Blood type (A, B, AB, O, unknown)")
	cmd.Flags().StringVarP(&f.birthDate, "birth", "d", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.photo, "photo", "", "Photo reference")
	cmd.Flags().StringVarP(&f.note, "note", "n", "", "Free-text note")
}

func (f *personFlags) draft(name string) entities.PersonDraft {
	return entities.PersonDraft{
		Name:      name,
		Gender:    entities.ParseGender(f.gender),
		BloodType: entities.ParseBloodType(f.bloodType),
		BirthDate: f.birthDate,
		PhotoRef:  f.photo,
		Note:      f.note,
	}
}

func newPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people in the family graph",
	}

	cmd.AddCommand(
		newPersonAddCmd(),
		newPersonUpdateCmd(),
		newPersonRemoveCmd(),
		newPersonListCmd(),
	)

	return cmd
}

func newPersonAddCmd() *cobra.Command {
	var flags personFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person",
		Long: `Adds a person to the family graph.

Examples:
  kin person add Alice --gender female --blood A --birth 1994-03-15
  kin person add "Bob Jr." --note "second son"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				p, ok := d.PersonHandler.HandleAdd(flags.draft(args[0]))
				if !ok {
					fmt.Println("Nothing added: name is empty")
					return nil
				}
				fmt.Printf("Added %s (%s)\n", p.Name, p.ID)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newPersonUpdateCmd() *cobra.Command {
	var flags personFlags
	var name string

	cmd := &cobra.Command{
		Use:   "update <person-id>",
		Short: "Replace a person's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if d.PersonHandler.HandleUpdate(args[0], flags.draft(name)) {
					fmt.Printf("Updated %s\n", args[0])
				} else {
					fmt.Println("Nothing updated: unknown id or empty name")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name (required)")
	_ = cmd.MarkFlagRequired("name")
	flags.register(cmd)
	return cmd
}

func newPersonRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <person-id>",
		Short: "Remove a person and every relationship involving them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if d.PersonHandler.HandleRemove(args[0]) {
					fmt.Printf("Removed %s\n", args[0])
				} else {
					fmt.Println("Nothing removed: unknown id")
				}
				return nil
			})
		},
	}
}

func newPersonListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				people := d.PersonHandler.HandleList()
				if len(people) == 0 {
					fmt.Println("No people yet. Add one with 'kin person add'.")
					return nil
				}

				now := time.Now()
				for _, p := range people {
					fmt.Println(formatPerson(p, now))
				}
				fmt.Printf("\n%d people\n", len(people))
				return nil
			})
		},
	}
}

func formatPerson(p entities.Person, now time.Time) string {
	age := ""
	if a := p.Age(now); a >= 0 {
		age = fmt.Sprintf(" (%d)", a)
	}
	return fmt.Sprintf("%s  %s%s  gender=%s blood=%s", p.ID, p.Name, age, p.Gender, p.BloodType)
}
