package types

import (
	"fmt"
	"strings"
)

// DefaultDuration is the maximum year assumed for a course missing from the
// course table.
const DefaultDuration = 5

// Course pairs a course name with its duration in years.
type Course struct {
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Duration int    `json:"duration" yaml:"duration" mapstructure:"duration"`
}

// CourseTable is the ordered duration table. Order is preserved for display
// and for uniform random selection.
type CourseTable []Course

// DefaultCourses returns a fresh copy of the built-in course table.
func DefaultCourses() CourseTable {
	return CourseTable{
		{Name: "B.Tech", Duration: 4},
		{Name: "MCA", Duration: 3},
		{Name: "MBA", Duration: 2},
		{Name: "BBA", Duration: 3},
		{Name: "PhD", Duration: 5},
	}
}

// Duration returns the maximum valid year for the named course. Unknown
// courses get DefaultDuration.
func (t CourseTable) Duration(name string) int {
	for _, c := range t {
		if c.Name == name {
			return c.Duration
		}
	}
	return DefaultDuration
}

// Has reports whether the table contains the named course.
func (t CourseTable) Has(name string) bool {
	for _, c := range t {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Names returns the course names in table order.
func (t CourseTable) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// Validate checks that names are non-empty, unique and free of surrounding
// whitespace, and that every duration is at least one year. Lookups compare
// names exactly. Errors wrap ErrCourseTableInvalid.
func (t CourseTable) Validate() error {
	seen := make(map[string]bool, len(t))
	for i, c := range t {
		name := c.Name
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: course %d has an empty name", ErrCourseTableInvalid, i)
		}
		if name != strings.TrimSpace(name) {
			return fmt.Errorf("%w: course %q has surrounding whitespace", ErrCourseTableInvalid, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate course %q", ErrCourseTableInvalid, name)
		}
		if c.Duration < 1 {
			return fmt.Errorf("%w: course %q has duration %d", ErrCourseTableInvalid, name, c.Duration)
		}
		seen[name] = true
	}
	return nil
}
