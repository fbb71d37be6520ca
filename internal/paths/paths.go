// Package paths resolves the roster's configuration and data directories.
// Every resolved path is absolute.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory created under the platform config/data roots.
const appDirName = "roster"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// overrides it. The database lives next to where the roster is run.
const DefaultDataDirName = ".roster-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ROSTER_CONFIG_DIR"
	EnvDataDir   = "ROSTER_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/roster (fallback ~/.config/roster)
// macOS:   ~/Library/Application Support/roster
// Windows: %APPDATA%/roster
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// PlatformDataDir returns the platform-specific data directory. It is not
// the default (see ResolveDataDir) but is offered by `roster init --global`.
//
// Linux:   $XDG_DATA_HOME/roster (fallback ~/.local/share/roster)
// macOS:   ~/Library/Application Support/roster
// Windows: %APPDATA%/roster
func PlatformDataDir() (string, error) {
	return platformPath("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func platformPath(xdgVar, homeRel string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > ROSTER_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if p := firstNonEmpty(flag, os.Getenv(EnvConfigDir)); p != "" {
		return filepath.Abs(p)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > ROSTER_DATA_DIR env > $(CWD)/.roster-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if p := firstNonEmpty(flag, configYAMLValue, os.Getenv(EnvDataDir)); p != "" {
		return filepath.Abs(p)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
