package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/presenter"
)

// studentFields are the flags shared by add and update.
type studentFields struct {
	name   string
	course string
	year   string
}

func (f *studentFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "student name")
	cmd.Flags().StringVar(&f.course, "course", "", "course (see `roster courses`)")
	cmd.Flags().StringVar(&f.year, "year", "", "year of study, a positive integer")
}

func newAddCmd(rt *runtime) *cobra.Command {
	var f studentFields
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a student",
		Example: `  roster add --name "Alice Smith" --course MBA --year 1`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				id, err := s.presenter.Add(cmd.Context(), f.name, f.course, f.year)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), rt.flags.jsonMode,
					map[string]int64{"student_uid": id}, "Added student %d", id)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(rt *runtime) *cobra.Command {
	var f studentFields
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a student's name, course and year",
		Long: "Update replaces all mutable fields of the student with the given id.\n" +
			"An id that does not exist is ignored.",
		Example: `  roster update 3 --name "Alice Smith" --course PhD --year 2`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				if err := s.presenter.Update(cmd.Context(), args[0], f.name, f.course, f.year); err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), rt.flags.jsonMode,
					map[string]string{"student_uid": args[0]}, "Updated student %s", args[0])
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(rt *runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student after confirmation",
		Long: "Delete removes the student with the given id. It asks for confirmation\n" +
			"unless --yes is given. An id that does not exist is ignored.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				confirm := presenter.Confirmer(presenter.AlwaysConfirm)
				if !yes {
					confirm = s.confirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
				}
				ran, err := s.presenter.Delete(cmd.Context(), args[0], confirm)
				if err != nil {
					return err
				}
				if !ran {
					return writeResult(cmd.OutOrStdout(), rt.flags.jsonMode,
						map[string]any{"student_uid": args[0], "deleted": false}, "Delete cancelled")
				}
				return writeResult(cmd.OutOrStdout(), rt.flags.jsonMode,
					map[string]any{"student_uid": args[0], "deleted": true}, "Deleted student %s", args[0])
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
