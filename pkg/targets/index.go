// Package targets holds the read-only set of target identifiers and the
// strategies used to find the best match for a candidate identifier.
package targets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

var (
	// ErrNoTargets is returned when an index would be built from an empty set.
	ErrNoTargets = errors.New("no target identifiers")

	// ErrInvalidTarget is returned for entries that are not valid identifiers.
	ErrInvalidTarget = errors.New("invalid target identifier")
)

// Match is the score of a candidate: the number of leading hex characters it
// shares with Target. An empty Target means the index could not name one.
type Match struct {
	Length int
	Target string
}

// Compare orders matches by Length, then by Target. An absent target sorts
// below every present one. It returns -1, 0 or +1.
func (m Match) Compare(other Match) int {
	switch {
	case m.Length < other.Length:
		return -1
	case m.Length > other.Length:
		return 1
	}
	return strings.Compare(m.Target, other.Target)
}

// Perfect reports whether the match reaches the given length.
func (m Match) Perfect(length int) bool {
	return m.Length >= length
}

// Index finds the closest target to a candidate identifier. Implementations
// are immutable after construction and safe for concurrent readers.
type Index interface {
	// BestMatch returns the best match for a 40 character identifier.
	BestMatch(identifier string) Match

	// Len returns the number of targets.
	Len() int

	// SizeBytes estimates the memory held by the index.
	SizeBytes() int
}

// Score scores identifier against idx.
func Score(identifier string, idx Index) Match {
	return idx.BestMatch(identifier)
}

// commonPrefix counts the leading hex characters shared by a and b.
func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// commonPrefixBytes counts the leading nibbles shared by a and b.
func commonPrefixBytes(a, b *[20]byte) int {
	count := 0
	for i := range a {
		if a[i] == b[i] {
			count += 2
			continue
		}
		if a[i]>>4 == b[i]>>4 {
			count++
		}
		break
	}
	return count
}

// decode converts an identifier to its 20 raw bytes.
func decode(identifier string) ([20]byte, error) {
	var out [20]byte
	if !generator.IsIdentifier(identifier) {
		return out, fmt.Errorf("%w: %q", ErrInvalidTarget, identifier)
	}
	for i := 0; i < len(out); i++ {
		out[i] = unhex(identifier[2*i])<<4 | unhex(identifier[2*i+1])
	}
	return out, nil
}

func unhex(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}
	return c - '0'
}

func encode(raw *[20]byte) string {
	const hextable = "0123456789abcdef"
	var buf [generator.IdentifierLength]byte
	for i, v := range raw {
		buf[i*2] = hextable[v>>4]
		buf[i*2+1] = hextable[v&0x0f]
	}
	return string(buf[:])
}
