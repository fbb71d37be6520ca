package sqlite

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		sName     string
		course    string
		year      int
		wantField string
	}{
		{name: "valid record", sName: "Alice Smith", course: "MBA", year: 2},
		{name: "unknown course accepted", sName: "Bob Jones", course: "Diploma", year: 7},
		{name: "empty name", sName: "", course: "MBA", year: 1, wantField: types.FieldName},
		{name: "empty course", sName: "Alice", course: "", year: 1, wantField: types.FieldCourse},
		{name: "zero year", sName: "Alice", course: "MBA", year: 0, wantField: types.FieldYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b := setupBackend(t)

			id, err := b.Create(ctx, tt.sName, tt.course, tt.year)
			all, listErr := b.ListAll(ctx)
			require.NoError(t, listErr)

			if tt.wantField != "" {
				require.Error(t, err)
				assert.True(t, types.IsValidation(err))
				assert.Empty(t, all, "validation failure must not write")
				return
			}

			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, types.Student{ID: id, Name: tt.sName, Course: tt.course, Year: tt.year}, all[0])
		})
	}
}

func TestCreateAssignsFreshMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	first, err := b.Create(ctx, "Alice", "MBA", 1)
	require.NoError(t, err)
	second, err := b.Create(ctx, "Bob", "MCA", 2)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	// AUTOINCREMENT never reuses the id of a deleted row.
	require.NoError(t, b.Delete(ctx, second))
	third, err := b.Create(ctx, "Charlie", "PhD", 3)
	require.NoError(t, err)
	assert.Greater(t, third, second)
}

func TestListAllEmptyAndOrdered(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	all, err := b.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, name := range []string{"Zed", "Amy", "Moe"} {
		_, err := b.Create(ctx, name, "BBA", 1)
		require.NoError(t, err)
	}
	all, err = b.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
	assert.Equal(t, "Zed", all[0].Name)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	a, err := b.Create(ctx, "Alice", "MBA", 1)
	require.NoError(t, err)
	bb, err := b.Create(ctx, "Bob", "MCA", 2)
	require.NoError(t, err)

	t.Run("existing id changes only that record", func(t *testing.T) {
		require.NoError(t, b.Update(ctx, a, "Alice Smith", "PhD", 4))
		all, err := b.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []types.Student{
			{ID: a, Name: "Alice Smith", Course: "PhD", Year: 4},
			{ID: bb, Name: "Bob", Course: "MCA", Year: 2},
		}, all)
	})

	t.Run("missing id leaves store unchanged", func(t *testing.T) {
		before, err := b.ListAll(ctx)
		require.NoError(t, err)
		require.NoError(t, b.Update(ctx, 9999, "Ghost", "MBA", 1))
		after, err := b.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("invalid fields rejected", func(t *testing.T) {
		err := b.Update(ctx, a, "", "PhD", 1)
		assert.True(t, types.IsValidation(err))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	a, err := b.Create(ctx, "Alice", "MBA", 1)
	require.NoError(t, err)
	_, err = b.Create(ctx, "Bob", "MCA", 2)
	require.NoError(t, err)

	require.NoError(t, b.Delete(ctx, a))
	all, err := b.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	for _, s := range all {
		assert.NotEqual(t, a, s.ID)
	}

	// Deleting again, or deleting an unknown id, is a silent no-op.
	require.NoError(t, b.Delete(ctx, a))
	require.NoError(t, b.Delete(ctx, 424242))
	after, err := b.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, all, after)
}

func TestRenormalizeYears(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	seed := []types.Student{
		{Name: "A", Course: "B.Tech", Year: 40},
		{Name: "B", Course: "MCA", Year: 9},
		{Name: "C", Course: "MBA", Year: 7},
		{Name: "D", Course: "BBA", Year: 1},
		{Name: "E", Course: "PhD", Year: 12},
		{Name: "F", Course: "Diploma", Year: 30},
	}
	for i := 0; i < 10; i++ {
		for _, s := range seed {
			_, err := b.Create(ctx, s.Name, s.Course, s.Year)
			require.NoError(t, err)
		}
	}

	n, err := b.RenormalizeYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60, n)

	courses := b.Courses()
	all, err := b.ListAll(ctx)
	require.NoError(t, err)
	for _, s := range all {
		assert.GreaterOrEqual(t, s.Year, 1, "student %d", s.ID)
		assert.LessOrEqual(t, s.Year, courses.Duration(s.Course), "student %d (%s)", s.ID, s.Course)
	}
}

func TestRenormalizeYearsUsesConfiguredCourses(t *testing.T) {
	ctx := context.Background()
	b := NewBackend(WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
		Courses: types.CourseTable{{Name: "MSc", Duration: 1}},
	}))
	defer b.Detach()

	_, err := b.Create(ctx, "Alice", "MSc", 2)
	require.NoError(t, err)

	_, err = b.RenormalizeYears(ctx)
	require.NoError(t, err)

	all, err := b.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, all[0].Year)
}

func TestRenormalizeYearsCountsUnknownCourses(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	b := NewBackend(
		WithRand(rand.New(rand.NewPCG(7, 8))),
		WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)),
	)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer b.Detach()

	_, err := b.Create(ctx, "Alice", "MBA", 1)
	require.NoError(t, err)
	_, err = b.Create(ctx, "Bob", "Dance", 9)
	require.NoError(t, err)
	buf.Reset()

	n, err := b.RenormalizeYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var entry struct {
		Rows    int `json:"rows"`
		Unknown int `json:"unknown_course_rows"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
	assert.Equal(t, 2, entry.Rows)
	assert.Equal(t, 1, entry.Unknown)

	all, err := b.ListAll(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, all[1].Year, types.DefaultDuration)
}

func TestRenormalizeYearsEmptyStore(t *testing.T) {
	b := setupBackend(t)
	n, err := b.RenormalizeYears(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
