package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/roster/internal/paths"
	"github.com/mesh-intelligence/roster/internal/presenter"
	"github.com/mesh-intelligence/roster/internal/sqlite"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// session couples an attached backend with the presenter that owns the
// snapshot.
type session struct {
	backend   *sqlite.Backend
	presenter *presenter.Presenter

	// readLine returns the next input line for confirmation prompts. It is
	// set by the shell so prompts share the shell's reader.
	readLine func() (string, error)
}

// storeConfig builds the backend configuration from flags and config.yaml.
func (rt *runtime) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(rt.flags.dataDir, rt.settings.DataDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	backend := rt.settings.Backend
	if backend == "" {
		backend = types.BackendSQLite
	}
	return types.Config{
		Backend: backend,
		DataDir: dataDir,
		Courses: rt.settings.Courses,
	}, nil
}

// openSession attaches a backend and wraps it in a presenter.
func (rt *runtime) openSession() (*session, error) {
	cfg, err := rt.storeConfig()
	if err != nil {
		return nil, err
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return &session{
		backend:   backend,
		presenter: presenter.New(backend, backend.Courses()),
	}, nil
}

// withSession runs fn against the shell's session, or against a session
// opened and detached around fn.
func (rt *runtime) withSession(fn func(s *session) error) error {
	if rt.session != nil {
		return fn(rt.session)
	}
	s, err := rt.openSession()
	if err != nil {
		return err
	}
	defer s.backend.Detach()
	return fn(s)
}

// confirmer prompts on out and reads the answer from the session's line
// reader, or from in when no shell is running.
func (s *session) confirmer(in io.Reader, out io.Writer) presenter.Confirmer {
	readLine := s.readLine
	if readLine == nil {
		r := bufio.NewReader(in)
		readLine = func() (string, error) { return r.ReadString('\n') }
	}
	return func(id int64) bool {
		fmt.Fprintf(out, "Delete UID %d? [y/N] ", id)
		answer, err := readLine()
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
