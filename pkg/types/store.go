package types

import (
	"context"
	"errors"
)

// Store persists student records. Update and Delete on a missing id succeed
// without effect; there is no not-found signal.
type Store interface {
	// Create inserts a record and returns its new id.
	// Returns a *ValidationError if name or course is empty or year < 1.
	Create(ctx context.Context, name, course string, year int) (int64, error)

	// ListAll returns every record ordered by ascending id.
	ListAll(ctx context.Context) ([]Student, error)

	// Update replaces name, course and year of the record with the given id.
	Update(ctx context.Context, id int64, name, course string, year int) error

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int64) error

	// RenormalizeYears redraws every record's year uniformly from
	// [1, duration(course)] and returns the number of rows updated. Rows are
	// updated independently, so a failure can leave earlier rows changed.
	RenormalizeYears(ctx context.Context) (int, error)
}

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
