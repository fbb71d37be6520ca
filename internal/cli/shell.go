package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

const shellPrompt = "roster> "

func newShellCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Shell reads one roster command per line against a single session, so the
rows shown persist between commands. "sort" reorders the rows currently shown,
which lets it follow a search or filter. Extra commands: sort, show, refresh.
Type "exit" or "quit" to leave.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession()
			if err != nil {
				return err
			}
			defer s.backend.Detach()

			if err := s.presenter.Refresh(cmd.Context()); err != nil {
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			s.readLine = func() (string, error) {
				if scanner.Scan() {
					return scanner.Text(), nil
				}
				if err := scanner.Err(); err != nil {
					return "", err
				}
				return "", io.EOF
			}

			stderr := cmd.ErrOrStderr()
			for {
				fmt.Fprint(stderr, shellPrompt)
				line, err := s.readLine()
				if err != nil {
					fmt.Fprintln(stderr)
					if errors.Is(err, io.EOF) {
						return nil
					}
					return err
				}

				line = strings.TrimSpace(line)
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}

				words, err := splitArgs(line)
				if err != nil {
					fmt.Fprintln(stderr, "error:", err)
					continue
				}
				if len(words) == 0 {
					continue
				}

				// Flags set on one line do not carry over to the next.
				tree := newRootCmd(&runtime{flags: rt.flags, settings: rt.settings, session: s})
				tree.SetArgs(words)
				tree.SetIn(cmd.InOrStdin())
				tree.SetOut(cmd.OutOrStdout())
				tree.SetErr(stderr)
				if err := tree.ExecuteContext(cmd.Context()); err != nil {
					fmt.Fprintln(stderr, "error:", err)
				}
			}
		},
	}
}

// splitArgs splits a shell line into words with POSIX-style quoting. A "#"
// starting a word comments out the rest of the line.
func splitArgs(line string) ([]string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return words, nil
}
