package targets

import (
	"bytes"
	"slices"
	"sort"
)

// Sorted keeps the targets as a sorted array of raw identifiers. In nearest
// mode the closer of the predecessor and successor (by numeric distance) is
// scored; in bisect mode only the predecessor is, wrapping to the largest
// target when the candidate sorts below all of them.
type Sorted struct {
	keys    [][20]byte
	nearest bool
}

// NewNearest builds a nearest-neighbour index.
func NewNearest(identifiers []string) (*Sorted, error) {
	return newSorted(identifiers, true)
}

// NewBisect builds a predecessor-only index.
func NewBisect(identifiers []string) (*Sorted, error) {
	return newSorted(identifiers, false)
}

func newSorted(identifiers []string, nearest bool) (*Sorted, error) {
	keys := make([][20]byte, 0, len(identifiers))
	for _, id := range identifiers {
		raw, err := decode(id)
		if err != nil {
			return nil, err
		}
		keys = append(keys, raw)
	}
	if len(keys) == 0 {
		return nil, ErrNoTargets
	}

	slices.SortFunc(keys, func(a, b [20]byte) int { return bytes.Compare(a[:], b[:]) })
	keys = slices.Compact(keys)
	return &Sorted{keys: keys, nearest: nearest}, nil
}

// BestMatch scores the identifier against its neighbour in sort order.
func (s *Sorted) BestMatch(identifier string) Match {
	key, err := decode(identifier)
	if err != nil {
		return Match{}
	}

	// first index whose key is strictly greater than the candidate
	idx := sort.Search(len(s.keys), func(i int) bool {
		return bytes.Compare(s.keys[i][:], key[:]) > 0
	})

	var best *[20]byte
	switch {
	case !s.nearest:
		if idx == 0 {
			best = &s.keys[len(s.keys)-1]
		} else {
			best = &s.keys[idx-1]
		}
	case idx == 0:
		best = &s.keys[0]
	case idx == len(s.keys):
		best = &s.keys[idx-1]
	default:
		pred, succ := &s.keys[idx-1], &s.keys[idx]
		below := distance(&key, pred)
		above := distance(succ, &key)
		if bytes.Compare(above[:], below[:]) < 0 {
			best = succ
		} else {
			best = pred
		}
	}

	return Match{Length: commonPrefixBytes(&key, best), Target: encode(best)}
}

// distance returns hi - lo for big-endian 160-bit numbers with hi >= lo.
func distance(hi, lo *[20]byte) [20]byte {
	var out [20]byte
	borrow := 0
	for i := len(hi) - 1; i >= 0; i-- {
		d := int(hi[i]) - int(lo[i]) - borrow
		borrow = 0
		if d < 0 {
			d += 256
			borrow = 1
		}
		out[i] = byte(d)
	}
	return out
}

// Len returns the number of distinct targets.
func (s *Sorted) Len() int {
	return len(s.keys)
}

// SizeBytes returns the size of the backing array.
func (s *Sorted) SizeBytes() int {
	return cap(s.keys) * 20
}
