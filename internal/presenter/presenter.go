// Package presenter holds the displayed snapshot of student records and
// turns raw field input into Store calls. It knows nothing about rendering;
// front ends read the snapshot and draw it however they like.
package presenter

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/roster/internal/logger"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// Snapshot is the ordered set of records currently on display. Highlighted is
// set for search and filter results.
type Snapshot struct {
	Rows        []types.Student `json:"rows"`
	Highlighted bool            `json:"highlighted"`
}

// Confirmer is asked before a delete runs. Returning false cancels it.
type Confirmer func(id int64) bool

// AlwaysConfirm approves every delete.
func AlwaysConfirm(int64) bool { return true }

// Presenter mediates between a front end and a types.Store.
type Presenter struct {
	store   types.Store
	courses types.CourseTable
	intN    func(n int) int
	log     zerolog.Logger

	snapshot Snapshot
}

// Option customizes a Presenter.
type Option func(*Presenter)

// WithRand sets the random source used by BulkInsertRandom.
func WithRand(r *rand.Rand) Option {
	return func(p *Presenter) {
		p.intN = r.IntN
	}
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Presenter) {
		p.log = l
	}
}

// New returns a Presenter over store with an empty snapshot. An empty course
// table falls back to types.DefaultCourses.
func New(store types.Store, courses types.CourseTable, opts ...Option) *Presenter {
	if len(courses) == 0 {
		courses = types.DefaultCourses()
	}
	p := &Presenter{
		store:    store,
		courses:  courses,
		intN:     rand.IntN,
		log:      logger.Component("presenter"),
		snapshot: Snapshot{Rows: []types.Student{}},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Snapshot returns a copy of the rows on display.
func (p *Presenter) Snapshot() Snapshot {
	rows := make([]types.Student, len(p.snapshot.Rows))
	copy(rows, p.snapshot.Rows)
	return Snapshot{Rows: rows, Highlighted: p.snapshot.Highlighted}
}

// Courses returns the course table used for random data.
func (p *Presenter) Courses() types.CourseTable {
	return p.courses
}

// Refresh replaces the snapshot with the full store contents.
func (p *Presenter) Refresh(ctx context.Context) error {
	rows, err := p.store.ListAll(ctx)
	if err != nil {
		return err
	}
	p.snapshot = Snapshot{Rows: rows}
	return nil
}

// Add validates raw input and creates a student. Nothing reaches the store
// when validation fails.
func (p *Presenter) Add(ctx context.Context, name, course, year string) (int64, error) {
	name, course = strings.TrimSpace(name), strings.TrimSpace(course)
	if err := requireFields(name, course); err != nil {
		return 0, err
	}
	y, err := parseYear(year)
	if err != nil {
		return 0, err
	}

	id, err := p.store.Create(ctx, name, course, y)
	if err != nil {
		return 0, err
	}
	return id, p.Refresh(ctx)
}

// Update validates raw input and replaces the student's fields. A missing id
// is not an error.
func (p *Presenter) Update(ctx context.Context, id, name, course, year string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	name, course = strings.TrimSpace(name), strings.TrimSpace(course)
	if err := requireFields(name, course); err != nil {
		return err
	}
	y, err := parseYear(year)
	if err != nil {
		return err
	}

	if err := p.store.Update(ctx, uid, name, course, y); err != nil {
		return err
	}
	return p.Refresh(ctx)
}

// Delete removes the student after confirm approves it. It reports whether
// the delete ran; a nil confirm declines.
func (p *Presenter) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	uid, err := parseID(id)
	if err != nil {
		return false, err
	}
	if confirm == nil || !confirm(uid) {
		p.log.Debug().Int64("student_uid", uid).Msg("delete declined")
		return false, nil
	}

	if err := p.store.Delete(ctx, uid); err != nil {
		return false, err
	}
	return true, p.Refresh(ctx)
}

// Renormalize redraws every year within its course duration and refreshes.
func (p *Presenter) Renormalize(ctx context.Context) (int, error) {
	n, err := p.store.RenormalizeYears(ctx)
	if err != nil {
		return n, err
	}
	return n, p.Refresh(ctx)
}

func requireFields(name, course string) error {
	if name == "" {
		return &types.ValidationError{Field: types.FieldName, Reason: "must not be empty"}
	}
	if course == "" {
		return &types.ValidationError{Field: types.FieldCourse, Reason: "must not be empty"}
	}
	return nil
}

func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &types.ValidationError{Field: types.FieldID, Reason: "must not be empty"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &types.ValidationError{Field: types.FieldID, Reason: "must be an integer"}
	}
	return id, nil
}

func parseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &types.ValidationError{Field: types.FieldYear, Reason: "must not be empty"}
	}
	y, err := strconv.Atoi(raw)
	if err != nil || y < 1 {
		return 0, &types.ValidationError{Field: types.FieldYear, Reason: "must be a positive integer"}
	}
	return y, nil
}
