package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingConfigUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.GapMinutes)
	assert.Equal(t, 30*time.Minute, cfg.GapThreshold())
	assert.Empty(t, cfg.WinCNCFile)
}

func TestLoad_ExplicitMissingPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_ParsesFileWithComments(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
# where the controller writes its history
wincnc_file = "/mnt/cnc/WINCNC.CSV"
gap_minutes = 5 # short shifts
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/cnc/WINCNC.CSV", cfg.WinCNCFile)
	assert.Equal(t, 5*time.Minute, cfg.GapThreshold())
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, `wincnc_file = "~/logs/WINCNC.CSV"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "WINCNC.CSV"), cfg.WinCNCFile)
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeConfig(t, `wincnc_file = [`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_NegativeGapRejected(t *testing.T) {
	path := writeConfig(t, `gap_minutes = -1`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gap_minutes")
}

func TestLoad_GapZeroDisablesRule(t *testing.T) {
	path := writeConfig(t, `gap_minutes = 0`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.GapThreshold())
}

func TestLocateLog_ConfiguredFileWins(t *testing.T) {
	log := filepath.Join(t.TempDir(), "WINCNC.CSV")
	require.NoError(t, os.WriteFile(log, []byte("x"), 0o600))

	cfg := &Config{WinCNCFile: log}
	got, err := cfg.LocateLog()
	require.NoError(t, err)
	assert.Equal(t, log, got)
}

func TestLocateLog_FallsBackToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "WINCNC.CSV"), []byte("x"), 0o600))
	t.Chdir(dir)

	cfg := &Config{}
	got, err := cfg.LocateLog()
	require.NoError(t, err)
	assert.Equal(t, "WINCNC.CSV", got)
}

func TestLocateLog_NamesEveryTriedPath(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := &Config{WinCNCFile: "/mnt/cnc/missing.csv"}
	_, err := cfg.LocateLog()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/mnt/cnc/missing.csv")
	assert.Contains(t, err.Error(), "C:/WinCNC/WINCNC.CSV")
	assert.Contains(t, err.Error(), "WINCNC.CSV")
}
