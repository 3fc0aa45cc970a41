package head

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// StdinName is the source name that selects standard input.
const StdinName = "-"

// stdinDisplayName is used in headers for standard input.
const stdinDisplayName = "standard input"

// Input is one opened source.
//
// Regular files are replayable: a scan is followed by a rewind. Everything
// else (standard input, pipes, FIFOs) is teed into memory during the scan and
// replayed from that buffer, so both kinds share one algorithm.
type Input struct {
	name   string
	r      io.Reader
	seeker io.Seeker
	closer io.Closer
}

// OpenInput opens the named source. An empty name or "-" reads from stdin.
func OpenInput(name string, stdin io.Reader) (*Input, error) {
	if name == "" || name == StdinName {
		return &Input{name: stdinDisplayName, r: stdin}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, &SourceOpenError{Name: name, Err: err}
	}

	in := &Input{name: name, r: f, closer: f}
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
		in.seeker = f
	}
	return in, nil
}

// Name returns the display name of the input.
func (in *Input) Name() string { return in.name }

// Replayable reports whether the input can be rewound after a full scan
// without buffering.
func (in *Input) Replayable() bool { return in.seeker != nil }

// Close releases the underlying file. Standard input is never closed.
func (in *Input) Close() error {
	if in.closer == nil {
		return nil
	}
	return in.closer.Close()
}

// scan runs count over the whole input and leaves the input positioned at
// its first byte again. count must consume its reader to EOF.
func (in *Input) scan(count func(io.Reader) (int64, error)) (int64, error) {
	if in.Replayable() {
		total, err := count(in.r)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", in.name, err)
		}
		if _, err := in.seeker.Seek(0, io.SeekStart); err != nil {
			return 0, fmt.Errorf("rewind %s: %w", in.name, err)
		}
		return total, nil
	}

	var buf bytes.Buffer
	total, err := count(io.TeeReader(in.r, &buf))
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", in.name, err)
	}
	in.r = &buf
	return total, nil
}
