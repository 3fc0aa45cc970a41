package head

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrInvalidCount is returned by ParseLimit for malformed counts.
var ErrInvalidCount = errors.New("invalid count")

// Kind selects how a Limit is applied to a source.
type Kind int

const (
	// TakeFirst emits the first N units.
	TakeFirst Kind = iota
	// DropLast emits every unit except the last N.
	DropLast
)

// Limit is a parsed signed count.
type Limit struct {
	Kind Kind
	N    int64
}

// First returns a limit emitting the first n units.
func First(n int64) Limit {
	return Limit{Kind: TakeFirst, N: n}
}

// AllButLast returns a limit emitting everything but the last n units.
func AllButLast(n int64) Limit {
	return Limit{Kind: DropLast, N: n}
}

// ParseLimit parses a signed count such as "10", "-5", "+3" or "2KiB".
// A leading '-' selects DropLast. Size suffixes follow go-humanize, so
// "1K" is 1000 and "1KiB" is 1024.
func ParseLimit(s string) (Limit, error) {
	raw := strings.TrimSpace(s)
	kind := TakeFirst
	switch {
	case strings.HasPrefix(raw, "-"):
		kind = DropLast
		raw = raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}

	if raw == "" || raw[0] < '0' || raw[0] > '9' || strings.ContainsAny(raw, ".,") {
		return Limit{}, fmt.Errorf("%w: %q", ErrInvalidCount, s)
	}

	if isDigits(raw) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Limit{}, fmt.Errorf("%w: %q is too large", ErrInvalidCount, s)
		}
		return Limit{Kind: kind, N: n}, nil
	}

	n, err := humanize.ParseBytes(raw)
	if err != nil {
		return Limit{}, fmt.Errorf("%w: %q", ErrInvalidCount, s)
	}
	if n > math.MaxInt64 {
		return Limit{}, fmt.Errorf("%w: %q is too large", ErrInvalidCount, s)
	}

	return Limit{Kind: kind, N: int64(n)}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NeedsTotal reports whether Resolve depends on the source's unit total.
func (l Limit) NeedsTotal() bool {
	return l.Kind == DropLast
}

// Resolve returns the non-negative number of units to emit from a source
// holding total units. total is ignored for TakeFirst limits.
func (l Limit) Resolve(total int64) int64 {
	if l.Kind == TakeFirst {
		return l.N
	}
	if l.N >= total {
		return 0
	}
	return total - l.N
}

func (l Limit) String() string {
	if l.Kind == DropLast {
		return fmt.Sprintf("-%d", l.N)
	}
	return fmt.Sprintf("%d", l.N)
}
