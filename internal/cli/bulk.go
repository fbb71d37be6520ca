package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/presenter"
	"github.com/mesh-intelligence/roster/pkg/types"
)

func newRenormalizeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "renormalize",
		Short: "Redraw every student's year within the course duration",
		Long: "Renormalize assigns every student a random year between 1 and the\n" +
			"duration of their course. Courses missing from the course table use 5.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				n, err := s.presenter.Renormalize(cmd.Context())
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), rt.flags.jsonMode,
					map[string]int{"updated": n}, "Renormalized %d %s", n, plural(n, "student", "students"))
			})
		},
	}
}

func newRandomCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "random <count>",
		Short: fmt.Sprintf("Insert %d-%d students with random data", presenter.MinRandomCount, presenter.MaxRandomCount),
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return &types.ValidationError{Field: "count", Reason: "must be an integer"}
			}
			return rt.withSession(func(s *session) error {
				res, err := s.presenter.BulkInsertRandom(cmd.Context(), count)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), rt.flags.jsonMode, res,
					"Inserted %d random %s (batch %s)", len(res.IDs), plural(len(res.IDs), "student", "students"), res.BatchID)
			})
		},
	}
}

func newCoursesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "Print the course duration table",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				return writeCourses(cmd.OutOrStdout(), s.presenter.Courses(), rt.flags.jsonMode)
			})
		},
	}
}

func newExportCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every student to a JSONL file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				n, err := s.backend.Export(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), rt.flags.jsonMode,
					map[string]any{"file": args[0], "exported": n}, "Exported %d %s to %s", n, plural(n, "student", "students"), args[0])
			})
		},
	}
}

func newImportCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add students from a JSONL file",
		Long: "Import reads one JSON object per line and adds each as a new student.\n" +
			"Ids in the file are ignored. Malformed or invalid lines are skipped.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withSession(func(s *session) error {
				res, err := s.backend.Import(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := s.presenter.Refresh(cmd.Context()); err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), rt.flags.jsonMode, map[string]any{
					"file": args[0], "imported": res.Imported, "skipped": res.Skipped, "ids": res.IDs,
				}, "Imported %d, skipped %d", res.Imported, res.Skipped)
			})
		},
	}
}
