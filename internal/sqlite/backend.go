// Package sqlite implements the SQLite storage backend for the roster.
// Every operation opens its own database handle and closes it before
// returning; the backend holds configuration, not connections.
package sqlite

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/roster/internal/logger"
	"github.com/mesh-intelligence/roster/pkg/types"
)

const (
	driverName = "sqlite"

	// DBFileName is the database file created inside the data directory.
	DBFileName = "students.db"
)

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on a single SQLite file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	courses  types.CourseTable
	dbPath   string

	intN func(n int) int
	log  zerolog.Logger
}

// Option customizes a Backend.
type Option func(*Backend)

// WithRand sets the random source used by RenormalizeYears.
func WithRand(r *rand.Rand) Option {
	return func(b *Backend) {
		b.intN = r.IntN
	}
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Backend) {
		b.log = l
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		intN: rand.IntN,
		log:  logger.Component("store"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach validates the configuration, creates DataDir if needed and migrates
// the schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	if err := runMigrations(dbPath); err != nil {
		return err
	}

	b.courses = config.CourseTableOrDefault()
	b.dbPath = dbPath
	b.attached = true

	b.log.Debug().Str("path", dbPath).Msg("store attached")
	return nil
}

// Detach marks the backend detached. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	b.log.Debug().Str("path", b.dbPath).Msg("store detached")
	return nil
}

// Courses returns the course table in effect.
func (b *Backend) Courses() types.CourseTable {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.courses
}

// Path returns the database file path, empty until attached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dbPath
}

// withDB opens a connection for the duration of fn.
func (b *Backend) withDB(ctx context.Context, fn func(db *sqlx.DB) error) error {
	b.mu.RLock()
	attached, dbPath := b.attached, b.dbPath
	b.mu.RUnlock()

	if !attached {
		return types.ErrDetached
	}

	db, err := sqlx.Open(driverName, dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return fn(db)
}
