package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/roster/pkg/types"
)

const (
	insertStudentSQL = `INSERT INTO students (name, course, year) VALUES (:name, :course, :year)`
	selectAllSQL     = `SELECT student_uid, name, course, year FROM students ORDER BY student_uid`
	updateStudentSQL = `UPDATE students SET name = ?, course = ?, year = ? WHERE student_uid = ?`
	deleteStudentSQL = `DELETE FROM students WHERE student_uid = ?`
	selectCoursesSQL = `SELECT student_uid, course FROM students ORDER BY student_uid`
	updateYearSQL    = `UPDATE students SET year = ? WHERE student_uid = ?`
)

// Create inserts a student and returns the id SQLite assigned.
func (b *Backend) Create(ctx context.Context, name, course string, year int) (int64, error) {
	if err := types.ValidateFields(name, course, year); err != nil {
		return 0, err
	}

	var id int64
	err := b.withDB(ctx, func(db *sqlx.DB) error {
		var err error
		id, err = insertStudent(ctx, db, types.Student{Name: name, Course: course, Year: year})
		return err
	})
	if err != nil {
		return 0, err
	}

	b.log.Info().Int64("student_uid", id).Str("course", course).Int("year", year).Msg("student created")
	return id, nil
}

func insertStudent(ctx context.Context, db *sqlx.DB, s types.Student) (int64, error) {
	res, err := db.NamedExecContext(ctx, insertStudentSQL, s)
	if err != nil {
		return 0, fmt.Errorf("inserting student: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading student id: %w", err)
	}
	return id, nil
}

// ListAll returns every student ordered by ascending id.
func (b *Backend) ListAll(ctx context.Context) ([]types.Student, error) {
	students := []types.Student{}
	err := b.withDB(ctx, func(db *sqlx.DB) error {
		if err := db.SelectContext(ctx, &students, selectAllSQL); err != nil {
			return fmt.Errorf("listing students: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

// Update replaces the mutable fields of a student. A missing id affects no
// rows and is not an error.
func (b *Backend) Update(ctx context.Context, id int64, name, course string, year int) error {
	if err := types.ValidateFields(name, course, year); err != nil {
		return err
	}

	var affected int64
	err := b.withDB(ctx, func(db *sqlx.DB) error {
		res, err := db.ExecContext(ctx, updateStudentSQL, name, course, year, id)
		if err != nil {
			return fmt.Errorf("updating student %d: %w", id, err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}

	b.log.Info().Int64("student_uid", id).Int64("rows", affected).Msg("student updated")
	return nil
}

// Delete removes a student. A missing id affects no rows and is not an error.
func (b *Backend) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := b.withDB(ctx, func(db *sqlx.DB) error {
		res, err := db.ExecContext(ctx, deleteStudentSQL, id)
		if err != nil {
			return fmt.Errorf("deleting student %d: %w", id, err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}

	b.log.Info().Int64("student_uid", id).Int64("rows", affected).Msg("student deleted")
	return nil
}

// courseRow is the projection read by RenormalizeYears.
type courseRow struct {
	ID     int64  `db:"student_uid"`
	Course string `db:"course"`
}

// RenormalizeYears draws a fresh year in [1, duration(course)] for every
// student. Courses missing from the table use types.DefaultDuration and are
// counted in the log line. Each row is written by its own statement; on
// failure the rows already written keep their new years and the count
// reflects them.
func (b *Backend) RenormalizeYears(ctx context.Context) (int, error) {
	courses := b.Courses()

	updated, unknown := 0, 0
	err := b.withDB(ctx, func(db *sqlx.DB) error {
		var rows []courseRow
		if err := db.SelectContext(ctx, &rows, selectCoursesSQL); err != nil {
			return fmt.Errorf("reading courses: %w", err)
		}
		for _, r := range rows {
			if !courses.Has(r.Course) {
				unknown++
			}
			year := b.intN(courses.Duration(r.Course)) + 1
			if _, err := db.ExecContext(ctx, updateYearSQL, year, r.ID); err != nil {
				return fmt.Errorf("renormalizing student %d: %w", r.ID, err)
			}
			updated++
		}
		return nil
	})

	b.log.Info().Int("rows", updated).Int("unknown_course_rows", unknown).Err(err).Msg("years renormalized")
	return updated, err
}
