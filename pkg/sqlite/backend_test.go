package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestNewBackendImplementsStore(t *testing.T) {
	var store types.Store = NewBackend()
	assert.NotNil(t, store)
}

func TestPublicBackendLifecycle(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer b.Detach()

	id, err := b.Create(context.Background(), "Alice Smith", "MBA", 1)
	require.NoError(t, err)

	all, err := b.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
}
