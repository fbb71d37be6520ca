package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/paths"
)

func newInitCmd(rt *runtime) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize roster storage",
		Long: "Create the configuration directory with a default config.yaml, then\n" +
			"create the data directory and the students database.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(rt.flags.configDir)
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}

			// --global pins the platform data directory in config.yaml unless
			// a data directory was already chosen.
			if global && rt.flags.dataDir == "" && rt.settings.DataDir == "" {
				dataDir, err := paths.PlatformDataDir()
				if err != nil {
					return fmt.Errorf("resolve platform data dir: %w", err)
				}
				if err := setConfigDataDir(filepath.Join(configDir, configFileExt), dataDir); err != nil {
					return err
				}
				rt.settings.DataDir = dataDir
			}

			cfg, err := rt.storeConfig()
			if err != nil {
				return err
			}
			s, err := rt.openSession()
			if err != nil {
				return err
			}
			if err := s.backend.Detach(); err != nil {
				return fmt.Errorf("finalize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			if rt.flags.jsonMode {
				return writeJSON(out, map[string]string{"config": configDir, "data": cfg.DataDir, "database": s.backend.Path()})
			}
			fmt.Fprintln(out, "Roster initialized successfully")
			fmt.Fprintln(out, "  config:", configDir)
			fmt.Fprintln(out, "  data:  ", cfg.DataDir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "store data in the platform data directory instead of $(CWD)/.roster-db")
	return cmd
}
