package head

import (
	"bytes"
	"errors"
	"io"
)

const scanBufferSize = 32 * 1024

// lineCounter returns a counter for lines terminated by delim. A trailing
// run of bytes without a terminator counts as a line.
func lineCounter(delim byte) func(io.Reader) (int64, error) {
	return func(r io.Reader) (int64, error) {
		buf := make([]byte, scanBufferSize)
		sep := []byte{delim}

		var (
			total int64
			last  = delim
		)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				total += int64(bytes.Count(buf[:n], sep))
				last = buf[n-1]
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return 0, err
			}
		}

		if last != delim {
			total++
		}
		return total, nil
	}
}

func countBytes(r io.Reader) (int64, error) {
	return io.Copy(io.Discard, r)
}
