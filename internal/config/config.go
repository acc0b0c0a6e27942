package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const defaultGapMinutes = 30

// defaultLogPath is where a stock WinCNC install writes its history.
const defaultLogPath = "C:/WinCNC/WINCNC.CSV"

// Config holds the tool's settings. It is constructed once at startup and
// passed explicitly into the components that need it.
type Config struct {
	// WinCNCFile overrides the default history log search location.
	WinCNCFile string `toml:"wincnc_file"`
	// GapMinutes is the idle time between two records that starts a new
	// session. 0 groups by the controller's start/exit markers only.
	GapMinutes int `toml:"gap_minutes"`
	// DebugLog, when set, sends debug output to a rotated file instead of
	// stderr.
	DebugLog string `toml:"debug_log"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cnchist", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing config file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{GapMinutes: defaultGapMinutes}

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.WinCNCFile = expandHome(cfg.WinCNCFile, home)
		cfg.DebugLog = expandHome(cfg.DebugLog, home)
	}
	if cfg.GapMinutes < 0 {
		return nil, fmt.Errorf("config %s: gap_minutes must be >= 0, got %d", path, cfg.GapMinutes)
	}
	return cfg, nil
}

// GapThreshold returns the session gap rule as a duration, 0 when disabled.
func (c *Config) GapThreshold() time.Duration {
	return time.Duration(c.GapMinutes) * time.Minute
}

// LocateLog resolves the history log path: the configured wincnc_file first,
// then the stock install location, then WINCNC.CSV in the working directory.
// When nothing exists the error names every path that was tried.
func (c *Config) LocateLog() (string, error) {
	candidates := []string{c.WinCNCFile, defaultLogPath, "WINCNC.CSV"}
	var tried []string
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		tried = append(tried, p)
	}
	if c.WinCNCFile == "" {
		tried = append(tried, "(wincnc_file is not set in the config)")
	}
	return "", fmt.Errorf("cannot find the WinCNC history log, tried:\n  %s",
		strings.Join(tried, "\n  "))
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(home, path[2:])
	}
	return path
}
