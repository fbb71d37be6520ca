package presenter

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Columns lists the column names accepted by Filter and Sort.
var Columns = []string{types.FieldID, types.FieldName, types.FieldCourse, types.FieldYear}

// columnAliases maps accepted spellings to canonical column names.
var columnAliases = map[string]string{
	"id":          types.FieldID,
	"uid":         types.FieldID,
	"student_uid": types.FieldID,
	"name":        types.FieldName,
	"course":      types.FieldCourse,
	"year":        types.FieldYear,
}

// NormalizeColumn returns the canonical column name or a ValidationError.
func NormalizeColumn(column string) (string, error) {
	c, ok := columnAliases[strings.ToLower(strings.TrimSpace(column))]
	if !ok {
		return "", &types.ValidationError{
			Field:  "column",
			Reason: "must be one of " + strings.Join(Columns, ", "),
		}
	}
	return c, nil
}

// Search fetches every record and keeps those whose id equals query or whose
// name contains it, ignoring case. The result is highlighted.
func (p *Presenter) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return &types.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	rows, err := p.store.ListAll(ctx)
	if err != nil {
		return err
	}

	needle := strings.ToLower(query)
	matched := []types.Student{}
	for _, r := range rows {
		if r.IDString() == query || strings.Contains(strings.ToLower(r.Name), needle) {
			matched = append(matched, r)
		}
	}

	p.snapshot = Snapshot{Rows: matched, Highlighted: true}
	p.log.Debug().Str("query", query).Int("matches", len(matched)).Msg("search")
	return nil
}

// Filter fetches every record and keeps those matching value in column:
// id by exact string, name by case-insensitive substring, course by
// case-insensitive equality, year by numeric equality. The result is
// highlighted.
func (p *Presenter) Filter(ctx context.Context, column, value string) error {
	col, err := NormalizeColumn(column)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	var match func(types.Student) bool
	switch col {
	case types.FieldID:
		match = func(s types.Student) bool { return s.IDString() == value }
	case types.FieldName:
		needle := strings.ToLower(value)
		match = func(s types.Student) bool { return strings.Contains(strings.ToLower(s.Name), needle) }
	case types.FieldCourse:
		match = func(s types.Student) bool { return strings.EqualFold(s.Course, value) }
	case types.FieldYear:
		year, err := strconv.Atoi(value)
		if err != nil {
			return &types.ValidationError{Field: types.FieldYear, Reason: "filter value must be numeric"}
		}
		match = func(s types.Student) bool { return s.Year == year }
	}

	rows, err := p.store.ListAll(ctx)
	if err != nil {
		return err
	}
	matched := []types.Student{}
	for _, r := range rows {
		if match(r) {
			matched = append(matched, r)
		}
	}

	p.snapshot = Snapshot{Rows: matched, Highlighted: true}
	p.log.Debug().Str("column", col).Str("value", value).Int("matches", len(matched)).Msg("filter")
	return nil
}

// Sort reorders the current snapshot in place without touching the store,
// so it composes with a preceding Search or Filter. The sort is stable;
// name and course compare case-insensitively.
func (p *Presenter) Sort(column string, ascending bool) error {
	col, err := NormalizeColumn(column)
	if err != nil {
		return err
	}

	var compare func(a, b types.Student) int
	switch col {
	case types.FieldID:
		compare = func(a, b types.Student) int { return cmp.Compare(a.ID, b.ID) }
	case types.FieldName:
		compare = func(a, b types.Student) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case types.FieldCourse:
		compare = func(a, b types.Student) int {
			return strings.Compare(strings.ToLower(a.Course), strings.ToLower(b.Course))
		}
	case types.FieldYear:
		compare = func(a, b types.Student) int { return cmp.Compare(a.Year, b.Year) }
	}
	if !ascending {
		asc := compare
		compare = func(a, b types.Student) int { return asc(b, a) }
	}

	rows := slices.Clone(p.snapshot.Rows)
	slices.SortStableFunc(rows, compare)
	p.snapshot = Snapshot{Rows: rows}
	return nil
}
