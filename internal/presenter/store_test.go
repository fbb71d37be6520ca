package presenter

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// memStore is an in-memory types.Store that records how often each
// operation ran.
type memStore struct {
	rows   []types.Student
	nextID int64
	calls  map[string]int

	failCreateAfter int // fail Create once this many have succeeded; 0 disables
	failList        bool
}

var errStoreDown = errors.New("store down")

func newMemStore(rows ...types.Student) *memStore {
	m := &memStore{calls: map[string]int{}}
	for _, r := range rows {
		if r.ID > m.nextID {
			m.nextID = r.ID
		}
		m.rows = append(m.rows, r)
	}
	return m
}

func (m *memStore) Create(_ context.Context, name, course string, year int) (int64, error) {
	m.calls["create"]++
	if err := types.ValidateFields(name, course, year); err != nil {
		return 0, err
	}
	if m.failCreateAfter > 0 && m.calls["create"] > m.failCreateAfter {
		return 0, errStoreDown
	}
	m.nextID++
	m.rows = append(m.rows, types.Student{ID: m.nextID, Name: name, Course: course, Year: year})
	return m.nextID, nil
}

func (m *memStore) ListAll(context.Context) ([]types.Student, error) {
	m.calls["list"]++
	if m.failList {
		return nil, errStoreDown
	}
	out := make([]types.Student, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *memStore) Update(_ context.Context, id int64, name, course string, year int) error {
	m.calls["update"]++
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i] = types.Student{ID: id, Name: name, Course: course, Year: year}
		}
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.calls["delete"]++
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *memStore) RenormalizeYears(context.Context) (int, error) {
	m.calls["renormalize"]++
	for i := range m.rows {
		m.rows[i].Year = 1
	}
	return len(m.rows), nil
}

func (m *memStore) mutations() int {
	return m.calls["create"] + m.calls["update"] + m.calls["delete"] + m.calls["renormalize"]
}
