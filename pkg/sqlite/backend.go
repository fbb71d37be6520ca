// Package sqlite exposes the SQLite roster store to callers outside this
// module while keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/roster/internal/sqlite"
)

// Option customizes a Backend; see WithRand and WithLogger.
type Option = sqlite.Option

// Re-exported options.
var (
	WithRand   = sqlite.WithRand
	WithLogger = sqlite.WithLogger
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".roster-db",
//	})
//	defer backend.Detach()
func NewBackend(opts ...Option) *sqlite.Backend {
	return sqlite.NewBackend(opts...)
}
