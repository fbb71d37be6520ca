package types

import (
	"strconv"
	"strings"
)

// Student is a single roster record. The id is assigned by the store on
// creation and never reused.
type Student struct {
	ID     int64  `json:"student_uid" db:"student_uid"`
	Name   string `json:"name" db:"name"`
	Course string `json:"course" db:"course"`
	Year   int    `json:"year" db:"year"`
}

// IDString returns the id as the decimal string used for exact-match search.
func (s Student) IDString() string {
	return strconv.FormatInt(s.ID, 10)
}

// ValidateFields checks the mutable fields of a record. It returns a
// *ValidationError naming the first offending field.
func ValidateFields(name, course string, year int) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: FieldName, Reason: "must not be empty"}
	}
	if strings.TrimSpace(course) == "" {
		return &ValidationError{Field: FieldCourse, Reason: "must not be empty"}
	}
	if year < 1 {
		return &ValidationError{Field: FieldYear, Reason: "must be a positive integer"}
	}
	return nil
}
