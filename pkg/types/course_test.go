package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseTableDuration(t *testing.T) {
	table := DefaultCourses()

	tests := []struct {
		course string
		want   int
	}{
		{"B.Tech", 4},
		{"MCA", 3},
		{"MBA", 2},
		{"BBA", 3},
		{"PhD", 5},
		{"Diploma", DefaultDuration},
		{"mba", DefaultDuration},
		{"", DefaultDuration},
	}

	for _, tt := range tests {
		t.Run(tt.course, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Duration(tt.course))
		})
	}
}

func TestCourseTableNamesPreserveOrder(t *testing.T) {
	assert.Equal(t, []string{"B.Tech", "MCA", "MBA", "BBA", "PhD"}, DefaultCourses().Names())
}

func TestDefaultCoursesReturnsCopy(t *testing.T) {
	a := DefaultCourses()
	a[0].Duration = 99
	assert.Equal(t, 4, DefaultCourses().Duration("B.Tech"))
}

func TestCourseTableHas(t *testing.T) {
	table := DefaultCourses()
	assert.True(t, table.Has("PhD"))
	assert.False(t, table.Has("phd"))
}

func TestCourseTableValidate(t *testing.T) {
	assert.NoError(t, DefaultCourses().Validate())
	assert.ErrorIs(t, CourseTable{{Name: " ", Duration: 1}}.Validate(), ErrCourseTableInvalid)
	assert.ErrorIs(t, CourseTable{{Name: "X", Duration: -1}}.Validate(), ErrCourseTableInvalid)
	assert.ErrorIs(t, CourseTable{{Name: "X", Duration: 1}, {Name: "X", Duration: 2}}.Validate(), ErrCourseTableInvalid)
}

func TestCourseTableValidateRejectsPaddedNames(t *testing.T) {
	for _, name := range []string{" MBA", "MBA ", "\tMBA"} {
		table := CourseTable{{Name: name, Duration: 2}}
		assert.ErrorIs(t, table.Validate(), ErrCourseTableInvalid, "%q", name)
	}
	// A padded name would never match stored rows.
	assert.Equal(t, DefaultDuration, CourseTable{{Name: " MBA", Duration: 2}}.Duration("MBA"))
}
