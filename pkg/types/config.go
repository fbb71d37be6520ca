package types

import "errors"

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend string      `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir string      `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	Courses CourseTable `json:"courses" yaml:"courses" mapstructure:"courses"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrCourseTableInvalid = errors.New("invalid course table")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty course table is valid; callers fill
// in DefaultCourses.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if len(c.Courses) > 0 {
		if err := c.Courses.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CourseTableOrDefault returns the configured course table, or
// DefaultCourses when none was configured.
func (c Config) CourseTableOrDefault() CourseTable {
	if len(c.Courses) == 0 {
		return DefaultCourses()
	}
	return c.Courses
}
