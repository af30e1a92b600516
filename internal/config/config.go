package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Environment variables consulted by Load
const (
	EnvWorkDir       = "GCL_WORKDIR"
	EnvCommitMessage = "GCL_COMMIT_MESSAGE"
	EnvSymlinkHelper = "GCL_SYMLINK_HELPER"
	EnvLogFile       = "GCL_LOG_FILE"
	EnvMinWidth      = "GCL_MIN_WIDTH"
	EnvMinHeight     = "GCL_MIN_HEIGHT"
)

// Config represents the application configuration. Nothing is read from
// or written to disk; values come from defaults, the environment and flags.
type Config struct {
	WorkDir       string // custom working-directory root
	UseCurrentDir bool   // start in current-directory mode instead of WorkDir
	CommitMessage string // message for automatic commits
	SymlinkHelper string // program run by the symlink shortcut, empty disables it
	LogFile       string
	MinWidth      int // smallest usable terminal
	MinHeight     int
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		WorkDir:       filepath.Join(homeDir, "Documents", "Git"),
		CommitMessage: "fixes",
		SymlinkHelper: "restore-symlinks",
		LogFile:       defaultLogFile(),
		MinWidth:      60,
		MinHeight:     24,
	}
}

func defaultLogFile() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "gcl", "gcl.log")
}

// Load returns the defaults overlaid with environment values
func Load(getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()
	if v := getenv(EnvWorkDir); v != "" {
		cfg.WorkDir = v
	}
	if v := getenv(EnvCommitMessage); v != "" {
		cfg.CommitMessage = v
	}
	if v, ok := lookup(getenv, EnvSymlinkHelper); ok {
		cfg.SymlinkHelper = v
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	for _, dim := range []struct {
		env string
		dst *int
	}{{EnvMinWidth, &cfg.MinWidth}, {EnvMinHeight, &cfg.MinHeight}} {
		v := getenv(dim.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive integer", dim.env, v)
		}
		*dim.dst = n
	}
	return cfg, nil
}

// lookup treats the value "none" as an explicit empty setting
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if v == "none" {
		return "", true
	}
	return v, true
}

// Root returns the working-directory root selected by the configuration
func (c *Config) Root() (string, error) {
	if c.UseCurrentDir {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		return wd, nil
	}
	return ExpandHome(c.WorkDir), nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || (len(path) > 1 && path[0] == '~' && path[1] == filepath.Separator) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
