package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("bank", "hsbc", "")
	fs.String("format", "yaml", "")
	fs.String("log-level", "info", "")
	fs.Bool("header", true, "")
	fs.Bool("verbose", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestBuild_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Bank:         "hsbc",
		Format:       "yaml",
		Header:       true,
		LogLevel:     "info",
		Addr:         ":8080",
		FetchTimeout: 30 * time.Second,
	}, cfg)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestBuild_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(
		"format: csv\naddr: \":9000\"\nfetch_timeout: 5s\nlog_level: warn\n"), 0o600))
	t.Setenv("BSP_ADDR", ":9100")

	cfg, err := Build("", testFlags(t, "--log-level", "debug", "--header=false"))
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Format, "config file beats default")
	assert.Equal(t, ":9100", cfg.Addr, "env beats config file")
	assert.Equal(t, "debug", cfg.LogLevel, "flag beats config file")
	assert.False(t, cfg.Header)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestBuild_ExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o600))

	cfg, err := Build(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)

	_, err = Build(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "read config")
}

func TestBuild_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BSP_BANK=hsbc\nBSP_FORMAT=pp\n"), 0o600))
	// Register cleanup, then clear so the .env value is picked up.
	t.Setenv("BSP_FORMAT", "")
	require.NoError(t, os.Unsetenv("BSP_FORMAT"))
	t.Setenv("BSP_BANK", "")
	require.NoError(t, os.Unsetenv("BSP_BANK"))

	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, "pp", cfg.Format)
}

func TestBuild_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("BSP_FETCH_TIMEOUT", "0s")
	_, err := Build("", nil)
	assert.ErrorContains(t, err, "fetch_timeout must be positive")

	t.Setenv("BSP_FETCH_TIMEOUT", "10s")
	t.Setenv("BSP_LOG_LEVEL", "chatty")
	_, err = Build("", nil)
	assert.ErrorContains(t, err, `invalid log_level "chatty"`)
}
