// Package head prints a bounded prefix of one or more input sources.
//
// A count is either "take the first N units" or "drop the last N units".
// The second form needs the total unit count of a source, so the source is
// scanned once before emission: regular files are rewound after the scan,
// streams are buffered in memory while it runs.
package head

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultLines is the line limit used when none is given.
const DefaultLines = 10

// HeaderMode controls the "==> name <==" line printed before each source.
type HeaderMode int

const (
	// HeadersAuto prints headers only when there is more than one source.
	HeadersAuto HeaderMode = iota
	// HeadersAlways prints a header even for a single source.
	HeadersAlways
	// HeadersNever suppresses headers.
	HeadersNever
)

// ParseHeaderMode parses "auto", "always" or "never".
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return HeadersAuto, nil
	case "always":
		return HeadersAlways, nil
	case "never":
		return HeadersNever, nil
	}
	return HeadersAuto, fmt.Errorf("unknown header mode %q (want auto, always or never)", s)
}

// InvalidLinePolicy decides what happens to a line that is not valid UTF-8.
type InvalidLinePolicy int

const (
	// SkipInvalid omits the line. It still counts toward the limit.
	SkipInvalid InvalidLinePolicy = iota
	// ReplaceInvalid emits the line with invalid bytes replaced by U+FFFD.
	ReplaceInvalid
)

// ParseInvalidLinePolicy parses "skip" or "replace".
func ParseInvalidLinePolicy(s string) (InvalidLinePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SkipInvalid, nil
	case "replace":
		return ReplaceInvalid, nil
	}
	return SkipInvalid, fmt.Errorf("unknown invalid-line policy %q (want skip or replace)", s)
}

// Options configures a single Run.
type Options struct {
	// Lines is the line limit. Ignored when Bytes is set.
	Lines Limit
	// Bytes selects byte mode when non-nil.
	Bytes *Limit
	// Sources are file paths; "-" is standard input. Empty reads standard input.
	Sources []string
	// Headers controls the per-source header line.
	Headers HeaderMode
	// ZeroTerminated uses NUL instead of newline as the line delimiter.
	ZeroTerminated bool
	// InvalidLines handles lines that are not valid UTF-8.
	InvalidLines InvalidLinePolicy
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// DefaultOptions returns options printing the first ten lines of stdin.
func DefaultOptions() Options {
	return Options{Lines: First(DefaultLines)}
}

// Run writes the head of every source to w, in order, reading standard input
// from stdin. It stops at the first failing source; output already written
// for earlier sources is kept.
func Run(opts Options, w io.Writer, stdin io.Reader) (err error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sources := opts.Sources
	if len(sources) == 0 {
		sources = []string{StdinName}
	}

	delim := byte('\n')
	if opts.ZeroTerminated {
		delim = 0
	}

	s := &selector{
		opts:   opts,
		logger: logger,
		lines:  newLineEmitter(delim, opts.InvalidLines, logger),
	}

	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("write output: %w", ferr)
		}
	}()

	showHeaders := opts.Headers == HeadersAlways ||
		(opts.Headers == HeadersAuto && len(sources) > 1)

	for i, name := range sources {
		if err := s.source(bw, name, stdin, showHeaders, i == 0); err != nil {
			return err
		}
	}
	return nil
}

type selector struct {
	opts   Options
	logger *slog.Logger
	lines  lineEmitter
}

// source handles one source from open to close.
func (s *selector) source(w io.Writer, name string, stdin io.Reader, header, first bool) error {
	in, err := OpenInput(name, stdin)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			s.logger.Warn("close failed", "source", in.Name(), "error", cerr)
		}
	}()

	if header {
		if err := writeHeader(w, in.Name(), first); err != nil {
			return err
		}
	}

	if s.opts.Bytes != nil {
		return s.bytes(w, in, *s.opts.Bytes)
	}
	return s.lineMode(w, in, s.opts.Lines)
}

func (s *selector) bytes(w io.Writer, in *Input, limit Limit) error {
	count, err := s.resolve(in, limit, countBytes)
	if err != nil {
		return err
	}
	s.logger.Debug("emitting bytes", "source", in.Name(), "limit", limit.String(), "count", count)
	return emitBytes(w, in.Name(), in.r, count, limit.NeedsTotal())
}

func (s *selector) lineMode(w io.Writer, in *Input, limit Limit) error {
	count, err := s.resolve(in, limit, lineCounter(s.lines.delim))
	if err != nil {
		return err
	}
	s.logger.Debug("emitting lines", "source", in.Name(), "limit", limit.String(), "count", count)
	return s.lines.emit(w, in.Name(), in.r, count)
}

// resolve turns limit into an effective count, scanning in when needed.
func (s *selector) resolve(in *Input, limit Limit, count func(io.Reader) (int64, error)) (int64, error) {
	if !limit.NeedsTotal() {
		return limit.Resolve(0), nil
	}

	total, err := in.scan(count)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("scanned source",
		"source", in.Name(),
		"total", total,
		"replayable", in.Replayable(),
	)
	return limit.Resolve(total), nil
}

// writeHeader prints "==> name <==", preceded by a blank line unless it is
// the first header of the run.
func writeHeader(w io.Writer, name string, first bool) error {
	prefix := "\n"
	if first {
		prefix = ""
	}
	if _, err := fmt.Fprintf(w, "%s==> %s <==\n", prefix, name); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
