package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/wincnc-tools/cnchist/internal/config"
	"github.com/wincnc-tools/cnchist/internal/history"
	"github.com/wincnc-tools/cnchist/internal/logger"
	"github.com/wincnc-tools/cnchist/internal/tui"
)

var version = "dev"

var (
	flagConfig string
	flagFile   string
	flagDebug  bool
)

const rootLong = `cnchist parses the WinCNC history log (WINCNC.CSV), groups the executed
files and commands into work sessions, and shows them with derived elapsed
times the raw log does not carry. Run bare for the interactive browser, or
use 'list' for plain console output.`

func main() {
	rootCmd := &cobra.Command{
		Use:     "cnchist",
		Short:   "Browse a WinCNC controller's history log as work sessions",
		Long:    rootLong,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, _, err := loadSessions()
			if err != nil {
				return err
			}
			return tui.Run(sessions, true)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.config/cnchist/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "History log path, overriding config and default locations")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "D", false, "Show debug output (skipped rows, resolved paths)")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// loadSessions runs the full pipeline: config, log location, parse, segment.
func loadSessions() ([]history.Session, string, error) {
	path, res, gap, err := parseLog()
	if err != nil {
		return nil, "", err
	}
	sessions := history.Segment(res, gap)
	logger.L().Debugf("%d records in %d sessions, %d rows skipped",
		len(res.Records), len(sessions), res.Skipped)
	return sessions, path, nil
}

// parseLog resolves and parses the history log without segmenting it.
func parseLog() (string, *history.ParseResult, time.Duration, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return "", nil, 0, err
	}
	logger.Init(flagDebug, cfg.DebugLog)

	path := flagFile
	if path == "" {
		path, err = cfg.LocateLog()
		if err != nil {
			return "", nil, 0, err
		}
	}
	logger.L().Debugf("using history log %s", path)

	res, err := history.ParseFile(path, logger.L())
	if err != nil {
		return "", nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	if res.Skipped > 0 {
		logger.L().Warnf("%s: skipped %d malformed rows", path, res.Skipped)
	}
	return path, res, cfg.GapThreshold(), nil
}
