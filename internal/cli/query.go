package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/presenter"
)

// sortFlags lets list, search and filter order their result in one step.
type sortFlags struct {
	column string
	desc   bool
}

func (f *sortFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.column, "sort", "", "sort the result by column: "+strings.Join(presenter.Columns, ", "))
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
}

// apply sorts the presenter's snapshot when --sort was given.
func (f *sortFlags) apply(p *presenter.Presenter) error {
	if f.column == "" {
		return nil
	}
	return p.Sort(f.column, !f.desc)
}

func (rt *runtime) show(cmd *cobra.Command, p *presenter.Presenter) error {
	return writeSnapshot(cmd.OutOrStdout(), p.Snapshot(), rt.flags.jsonMode)
}

func newListCmd(rt *runtime) *cobra.Command {
	var sf sortFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all students ordered by id",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				if err := s.presenter.Refresh(cmd.Context()); err != nil {
					return err
				}
				if err := sf.apply(s.presenter); err != nil {
					return err
				}
				return rt.show(cmd, s.presenter)
			})
		},
	}
	sf.register(cmd)
	return cmd
}

func newSearchCmd(rt *runtime) *cobra.Command {
	var sf sortFlags
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find students by exact id or name substring",
		Example: `  roster search ali
  roster search 12`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				if err := s.presenter.Search(cmd.Context(), args[0]); err != nil {
					return err
				}
				if err := sf.apply(s.presenter); err != nil {
					return err
				}
				return rt.show(cmd, s.presenter)
			})
		},
	}
	sf.register(cmd)
	return cmd
}

func newFilterCmd(rt *runtime) *cobra.Command {
	var sf sortFlags
	cmd := &cobra.Command{
		Use:   "filter <column> <value>",
		Short: "Show students whose column matches value",
		Long: `Filter fetches every student and keeps the rows where:

  id      equals value exactly
  name    contains value, ignoring case
  course  equals value, ignoring case
  year    equals value as a number`,
		Example: `  roster filter course MBA --sort year --desc`,
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				if err := s.presenter.Filter(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				if err := sf.apply(s.presenter); err != nil {
					return err
				}
				return rt.show(cmd, s.presenter)
			})
		},
	}
	sf.register(cmd)
	return cmd
}

// newSortCmd sorts whatever the shell currently shows.
func newSortCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <column> [asc|desc]",
		Short: "Sort the rows currently shown",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ascending := true
			if len(args) == 2 {
				switch strings.ToLower(args[1]) {
				case "asc", "ascending":
				case "desc", "descending":
					ascending = false
				default:
					return fmt.Errorf("%w: order must be asc or desc, got %q", errUsage, args[1])
				}
			}
			return rt.withSession(func(s *session) error {
				if err := s.presenter.Sort(args[0], ascending); err != nil {
					return err
				}
				return rt.show(cmd, s.presenter)
			})
		},
	}
}

func newShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the rows currently shown",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				return rt.show(cmd, s.presenter)
			})
		},
	}
}

func newRefreshCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload every student and print them",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				if err := s.presenter.Refresh(cmd.Context()); err != nil {
					return err
				}
				return rt.show(cmd, s.presenter)
			})
		},
	}
}
