package head

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrTruncatedSource marks a source that yielded fewer bytes than were
// measured for it earlier in the same run.
var ErrTruncatedSource = errors.New("source shorter than its measured length")

// SourceOpenError is returned when a named source cannot be opened.
type SourceOpenError struct {
	Name string
	Err  error
}

func (e *SourceOpenError) Error() string {
	cause := e.Err
	var pe *fs.PathError
	if errors.As(cause, &pe) {
		cause = pe.Err
	}
	return fmt.Sprintf("cannot open '%s' for reading: %v", e.Name, cause)
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// TruncatedSourceError reports a byte-mode read that came up short of the
// count computed from the source's own measured length.
type TruncatedSourceError struct {
	Name string
	Want int64
	Got  int64
}

func (e *TruncatedSourceError) Error() string {
	return fmt.Sprintf("%s: read %d of %d measured bytes", e.Name, e.Got, e.Want)
}

func (e *TruncatedSourceError) Unwrap() error { return ErrTruncatedSource }

// DecodeError describes a line whose bytes are not valid UTF-8.
// It is logged, never returned from Run.
type DecodeError struct {
	Name string
	Line int64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: line %d is not valid UTF-8", e.Name, e.Line)
}
