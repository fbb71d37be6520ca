package sqlite

import "github.com/mesh-intelligence/roster/pkg/types"

// studentJSON is one line of a students JSONL file.
type studentJSON struct {
	StudentUID int64  `json:"student_uid"`
	Name       string `json:"name"`
	Course     string `json:"course"`
	Year       int    `json:"year"`
}

func toStudentJSON(s types.Student) studentJSON {
	return studentJSON{
		StudentUID: s.ID,
		Name:       s.Name,
		Course:     s.Course,
		Year:       s.Year,
	}
}
