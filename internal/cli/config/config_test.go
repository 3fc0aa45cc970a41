package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/headr/internal/cli/testutil"
	"github.com/leapstack-labs/headr/internal/head"
)

func writeConfig(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("headr", pflag.ContinueOnError)
	fs.StringP("lines", "n", DefaultLines, "")
	fs.StringP("bytes", "c", "", "")
	fs.BoolP("quiet", "q", false, "")
	fs.BoolP("verbose", "v", false, "")
	fs.BoolP("zero-terminated", "z", false, "")
	fs.String("invalid-lines", DefaultInvalidLines, "")
	fs.String("log-level", DefaultLogLevel, "")
	fs.String("config", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	testutil.Isolate(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultLines, cfg.Lines)
	assert.Empty(t, cfg.Bytes)
	assert.Equal(t, DefaultHeaders, cfg.Headers)
	assert.Equal(t, DefaultInvalidLines, cfg.InvalidLines)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.ZeroTerminated)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := testutil.Isolate(t)
	path := writeConfig(t, filepath.Join(dir, "custom.yaml"), `
lines: -3
headers: always
invalid_lines: replace
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "-3", cfg.Lines)
	assert.Equal(t, "always", cfg.Headers)
	assert.Equal(t, "replace", cfg.InvalidLines)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	dir := testutil.Isolate(t)

	_, err := LoadConfig(filepath.Join(dir, "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_DiscoversWorkingDirectoryFile(t *testing.T) {
	dir := testutil.Isolate(t)
	writeConfig(t, filepath.Join(dir, ".headr.yaml"), "lines: 4\n")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "4", cfg.Lines)
	assert.Equal(t, ".headr.yaml", cfg.ConfigFile)
}

func TestLoadConfig_DiscoversUserConfigFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())
	path := writeConfig(t, filepath.Join(xdg, "headr", "headr.yaml"), "bytes: 2KiB\n")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "2KiB", cfg.Bytes)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := testutil.Isolate(t)
	path := writeConfig(t, filepath.Join(dir, "headr.yaml"), "lines: 4\nlog_level: info\n")

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("HEADR_LINES", "7")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "7", cfg.Lines)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("HEADR_LINES", "7")

		cfg, err := LoadConfig(path, testFlags(t, "-n", "-2"))
		require.NoError(t, err)
		assert.Equal(t, "-2", cfg.Lines)
	})

	t.Run("explicit lines flag overrides bytes from env", func(t *testing.T) {
		t.Setenv("HEADR_BYTES", "4")

		cfg, err := LoadConfig(path, testFlags(t, "-n", "1"))
		require.NoError(t, err)
		assert.Equal(t, "1", cfg.Lines)
		assert.Empty(t, cfg.Bytes)
	})

	t.Run("bytes from env kept without a lines flag", func(t *testing.T) {
		t.Setenv("HEADR_BYTES", "4")

		cfg, err := LoadConfig(path, testFlags(t, "-z"))
		require.NoError(t, err)
		assert.Equal(t, "4", cfg.Bytes)
	})

	t.Run("bytes flag still wins over lines flag", func(t *testing.T) {
		cfg, err := LoadConfig(path, testFlags(t, "-n", "1", "-c", "3"))
		require.NoError(t, err)
		assert.Equal(t, "3", cfg.Bytes)
	})

	t.Run("unchanged flags keep lower layers", func(t *testing.T) {
		cfg, err := LoadConfig(path, testFlags(t, "-z"))
		require.NoError(t, err)
		assert.Equal(t, "4", cfg.Lines)
		assert.True(t, cfg.ZeroTerminated)
	})

	t.Run("kebab flags map to snake keys", func(t *testing.T) {
		cfg, err := LoadConfig(path, testFlags(t, "--log-level", "debug", "--invalid-lines", "replace"))
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "replace", cfg.InvalidLines)
	})
}

func TestLoadConfig_HeaderFlags(t *testing.T) {
	dir := testutil.Isolate(t)
	path := writeConfig(t, filepath.Join(dir, "headr.yaml"), "headers: always\n")

	cfg, err := LoadConfig(path, testFlags(t, "-q"))
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Headers)

	cfg, err = LoadConfig("", testFlags(t, "--verbose"))
	require.NoError(t, err)
	assert.Equal(t, "always", cfg.Headers)

	cfg, err = LoadConfig(path, testFlags(t, "--quiet=false"))
	require.NoError(t, err)
	assert.Equal(t, "always", cfg.Headers)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		errSubstr string
	}{
		{"bad lines", map[string]string{"HEADR_LINES": "ten"}, `invalid number of lines: "ten"`},
		{"bad bytes", map[string]string{"HEADR_BYTES": "1.5"}, `invalid number of bytes: "1.5"`},
		{"bad headers", map[string]string{"HEADR_HEADERS": "sometimes"}, "unknown header mode"},
		{"bad policy", map[string]string{"HEADR_INVALID_LINES": "drop"}, "unknown invalid-line policy"},
		{"bad log level", map[string]string{"HEADR_LOG_LEVEL": "loud"}, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.Isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := &Config{
		Lines:          "-4",
		Bytes:          "1KiB",
		Headers:        "never",
		ZeroTerminated: true,
		InvalidLines:   "replace",
		LogLevel:       "error",
	}

	opts, err := cfg.Options()
	require.NoError(t, err)

	assert.Equal(t, head.AllButLast(4), opts.Lines)
	require.NotNil(t, opts.Bytes)
	assert.Equal(t, head.First(1024), *opts.Bytes)
	assert.Equal(t, head.HeadersNever, opts.Headers)
	assert.True(t, opts.ZeroTerminated)
	assert.Equal(t, head.ReplaceInvalid, opts.InvalidLines)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, lvl)
}

func TestConfig_OptionsLineMode(t *testing.T) {
	cfg := &Config{Lines: "10", Headers: "auto", InvalidLines: "skip", LogLevel: "warn"}

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Nil(t, opts.Bytes)
	assert.Equal(t, head.First(10), opts.Lines)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "falls back to a discard logger")

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
