package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mesh-intelligence/roster/internal/presenter"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// writeJSON pretty-prints v.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSnapshot renders the snapshot as a table, marking highlighted rows
// with "*", or as JSON.
func writeSnapshot(w io.Writer, snap presenter.Snapshot, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, snap)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tSTUDENT_UID\tNAME\tCOURSE\tYEAR")
	mark := " "
	if snap.Highlighted {
		mark = "*"
	}
	for _, s := range snap.Rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\n", mark, s.ID, s.Name, s.Course, s.Year)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d %s)\n", len(snap.Rows), plural(len(snap.Rows), "row", "rows"))
	return err
}

// writeCourses renders the duration table.
func writeCourses(w io.Writer, courses types.CourseTable, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, courses)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COURSE\tDURATION")
	for _, c := range courses {
		fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Duration)
	}
	return tw.Flush()
}

// writeResult prints msg, or v as JSON in JSON mode.
func writeResult(w io.Writer, jsonMode bool, v any, msg string, args ...any) error {
	if jsonMode {
		return writeJSON(w, v)
	}
	_, err := fmt.Fprintf(w, msg+"\n", args...)
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
