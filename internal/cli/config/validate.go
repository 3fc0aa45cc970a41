package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/headr/internal/head"
)

// Validate checks that every value can be turned into run options.
func (c *Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Options converts the configuration into head options. Sources and the
// logger are left for the caller to fill in.
func (c *Config) Options() (head.Options, error) {
	opts := head.Options{ZeroTerminated: c.ZeroTerminated}

	lines, err := head.ParseLimit(c.Lines)
	if err != nil {
		return head.Options{}, fmt.Errorf("invalid number of lines: %q", c.Lines)
	}
	opts.Lines = lines

	if strings.TrimSpace(c.Bytes) != "" {
		b, err := head.ParseLimit(c.Bytes)
		if err != nil {
			return head.Options{}, fmt.Errorf("invalid number of bytes: %q", c.Bytes)
		}
		opts.Bytes = &b
	}

	if opts.Headers, err = head.ParseHeaderMode(c.Headers); err != nil {
		return head.Options{}, err
	}
	if opts.InvalidLines, err = head.ParseInvalidLinePolicy(c.InvalidLines); err != nil {
		return head.Options{}, err
	}
	return opts, nil
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
