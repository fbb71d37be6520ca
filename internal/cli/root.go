// Package cli implements the roster command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/logger"
	"github.com/mesh-intelligence/roster/internal/paths"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// runtime is the state shared by one command tree. Inside the shell, session
// is set and every command reuses it instead of attaching its own store.
type runtime struct {
	flags    rootFlags
	settings settings
	session  *session
}

// NewRootCmd creates the top-level "roster" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&runtime{})
}

func newRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "roster",
		Short: "A local student roster backed by SQLite",
		Long: "Roster maintains student records (id, name, course, year) in a local\n" +
			"SQLite database, with search, filter, sort and bulk tools.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.prepare,
	}

	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	// Defaults come from rt so a shell's inner trees inherit the outer flags.
	root.PersistentFlags().StringVar(&rt.flags.configDir, "config-dir", rt.flags.configDir, "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&rt.flags.dataDir, "data-dir", rt.flags.dataDir, "data directory (default: $(CWD)/.roster-db)")
	root.PersistentFlags().BoolVar(&rt.flags.jsonMode, "json", rt.flags.jsonMode, "output in JSON format")
	root.PersistentFlags().StringVar(&rt.flags.logLevel, "log-level", rt.flags.logLevel, "log level: debug, info, warn, error, disabled")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(rt))
	root.AddCommand(newAddCmd(rt))
	root.AddCommand(newUpdateCmd(rt))
	root.AddCommand(newDeleteCmd(rt))
	root.AddCommand(newListCmd(rt))
	root.AddCommand(newSearchCmd(rt))
	root.AddCommand(newFilterCmd(rt))
	root.AddCommand(newRenormalizeCmd(rt))
	root.AddCommand(newRandomCmd(rt))
	root.AddCommand(newCoursesCmd(rt))
	root.AddCommand(newExportCmd(rt))
	root.AddCommand(newImportCmd(rt))

	if rt.session != nil {
		root.AddCommand(newSortCmd(rt))
		root.AddCommand(newShowCmd(rt))
		root.AddCommand(newRefreshCmd(rt))
	} else {
		root.AddCommand(newShellCmd(rt))
	}

	return root
}

// prepare loads config.yaml and configures logging. Inside a shell the outer
// tree has already done both.
func (rt *runtime) prepare(cmd *cobra.Command, args []string) error {
	if rt.session != nil || cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(rt.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	s, err := loadSettings(configDir)
	if err != nil {
		return err
	}
	rt.settings = s

	level := rt.flags.logLevel
	if level == "" {
		level = s.LogLevel
	}
	err = logger.Configure(logger.Config{
		Level:  level,
		Pretty: s.LogFormat == "console",
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

// Execute loads .env, runs the root command and exits with the appropriate
// code.
func Execute() {
	_ = godotenv.Load()
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and maps the error to an exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "roster:", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case types.IsValidation(err), errors.Is(err, errUsage):
		return exitUserError
	default:
		return exitSysError
	}
}

// errUsage marks command-line mistakes that are not field validation.
var errUsage = errors.New("usage")

// exactArgs wraps cobra.ExactArgs so argument-count mistakes map to
// exitUserError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}
