package head

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lineEmitter writes the first lines of a source, one delimiter per line.
type lineEmitter struct {
	delim   byte
	policy  InvalidLinePolicy
	logger  *slog.Logger
	decoder *encoding.Decoder // reset per line by Bytes
}

func newLineEmitter(delim byte, policy InvalidLinePolicy, logger *slog.Logger) lineEmitter {
	return lineEmitter{
		delim:   delim,
		policy:  policy,
		logger:  logger,
		decoder: unicode.UTF8.NewDecoder(),
	}
}

func (e lineEmitter) emit(w io.Writer, name string, r io.Reader, count int64) error {
	if count <= 0 {
		return nil
	}

	br := bufio.NewReader(r)
	for lineNo := int64(1); lineNo <= count; lineNo++ {
		line, readErr := br.ReadSlice(e.delim)
		if errors.Is(readErr, bufio.ErrBufferFull) {
			// ReadSlice hands back partial lines for long lines; gather the rest.
			full := append([]byte(nil), line...)
			for errors.Is(readErr, bufio.ErrBufferFull) {
				line, readErr = br.ReadSlice(e.delim)
				full = append(full, line...)
			}
			line = full
		}
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read %s: %w", name, readErr)
		}
		if len(line) == 0 {
			return nil
		}

		if line[len(line)-1] == e.delim {
			line = line[:len(line)-1]
		}
		if err := e.writeLine(w, name, lineNo, line); err != nil {
			return err
		}
		if readErr != nil {
			return nil
		}
	}
	return nil
}

func (e lineEmitter) writeLine(w io.Writer, name string, lineNo int64, line []byte) error {
	if !utf8.Valid(line) {
		derr := &DecodeError{Name: name, Line: lineNo}
		if e.policy == SkipInvalid {
			e.logger.Warn("skipping line", "error", derr)
			return nil
		}
		e.logger.Debug("replacing invalid bytes", "error", derr)
		fixed, err := e.decoder.Bytes(line)
		if err != nil {
			return fmt.Errorf("decode %s line %d: %w", name, lineNo, err)
		}
		line = fixed
	}

	if _, err := w.Write(line); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if _, err := w.Write([]byte{e.delim}); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// emitBytes copies count bytes of r to w through a lossy UTF-8 decoder.
// When measured is set, count came from r's own length and a short read is
// reported as a TruncatedSourceError; otherwise a short source just ends early.
func emitBytes(w io.Writer, name string, r io.Reader, count int64, measured bool) error {
	if count <= 0 {
		return nil
	}

	tw := transform.NewWriter(w, unicode.UTF8.NewDecoder())
	n, copyErr := io.CopyN(tw, r, count)
	closeErr := tw.Close()

	switch {
	case errors.Is(copyErr, io.EOF):
		if measured {
			return &TruncatedSourceError{Name: name, Want: count, Got: n}
		}
	case copyErr != nil:
		return fmt.Errorf("copy %s: %w", name, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("write output: %w", closeErr)
	}
	return nil
}
