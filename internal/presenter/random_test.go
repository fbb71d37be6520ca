package presenter

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestBulkInsertRandom(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(types.Student{ID: 1, Name: "Existing", Course: "MBA", Year: 1})
	p := newTestPresenter(store)

	res, err := p.BulkInsertRandom(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, res.IDs, 5)
	_, err = uuid.Parse(res.BatchID)
	assert.NoError(t, err)

	rows := p.Snapshot().Rows
	require.Len(t, rows, 6)
	assert.Equal(t, 1, store.calls["list"], "snapshot refreshed once")

	courses := p.Courses()
	for _, r := range rows[1:] {
		assert.True(t, courses.Has(r.Course), "course %q", r.Course)
		assert.GreaterOrEqual(t, r.Year, 1)
		assert.LessOrEqual(t, r.Year, courses.Duration(r.Course))

		parts := strings.Split(r.Name, " ")
		require.Len(t, parts, 2)
		assert.Contains(t, firstNames, parts[0])
		assert.Contains(t, lastNames, parts[1])
	}
}

func TestBulkInsertRandomBounds(t *testing.T) {
	for _, count := range []int{-1, 0, 101} {
		store := newMemStore()
		p := newTestPresenter(store)

		_, err := p.BulkInsertRandom(context.Background(), count)
		assert.True(t, types.IsValidation(err), "count %d", count)
		assert.Zero(t, store.mutations())
	}

	for _, count := range []int{1, 100} {
		p := newTestPresenter(newMemStore())
		res, err := p.BulkInsertRandom(context.Background(), count)
		require.NoError(t, err)
		assert.Len(t, res.IDs, count)
	}
}

func TestBulkInsertRandomCustomCourses(t *testing.T) {
	p := New(newMemStore(), types.CourseTable{{Name: "MSc", Duration: 1}})

	_, err := p.BulkInsertRandom(context.Background(), 20)
	require.NoError(t, err)
	for _, r := range p.Snapshot().Rows {
		assert.Equal(t, "MSc", r.Course)
		assert.Equal(t, 1, r.Year)
	}
}

func TestBulkInsertRandomPartialFailureRefreshes(t *testing.T) {
	store := newMemStore()
	store.failCreateAfter = 3
	p := newTestPresenter(store)

	res, err := p.BulkInsertRandom(context.Background(), 10)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Len(t, res.IDs, 3)
	assert.Len(t, p.Snapshot().Rows, 3)
}
