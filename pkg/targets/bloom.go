package targets

import (
	"github.com/willf/bloom"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

// DefaultBloomErrorRate is the false positive rate of each prefix filter.
const DefaultBloomErrorRate = 0.000001

// Bloom keeps one Bloom filter per prefix length. Every prefix of every
// target is added, so the longest prefix that tests positive is an upper
// bound on the true match length. Full-length hits are confirmed against an
// exact set so a false positive can never report a perfect match.
type Bloom struct {
	filters [generator.IdentifierLength - 1]*bloom.BloomFilter
	exact   map[[20]byte]struct{}
}

// NewBloom builds the prefix filters with the given false positive rate.
func NewBloom(identifiers []string, errorRate float64) (*Bloom, error) {
	if len(identifiers) == 0 {
		return nil, ErrNoTargets
	}
	if errorRate <= 0 || errorRate >= 1 {
		errorRate = DefaultBloomErrorRate
	}

	b := &Bloom{exact: make(map[[20]byte]struct{}, len(identifiers))}
	for i := range b.filters {
		b.filters[i] = bloom.NewWithEstimates(uint(len(identifiers)), errorRate)
	}

	for _, id := range identifiers {
		raw, err := decode(id)
		if err != nil {
			return nil, err
		}
		b.exact[raw] = struct{}{}
		for n := 1; n < generator.IdentifierLength; n++ {
			b.filters[n-1].Add([]byte(id[:n]))
		}
	}
	return b, nil
}

// BestMatch returns the longest prefix length the filters accept.
func (b *Bloom) BestMatch(identifier string) Match {
	raw, err := decode(identifier)
	if err != nil {
		return Match{}
	}
	if _, ok := b.exact[raw]; ok {
		return Match{Length: generator.IdentifierLength, Target: identifier}
	}

	buf := []byte(identifier)
	count := 0
	for n := 1; n < generator.IdentifierLength; n++ {
		if !b.filters[n-1].Test(buf[:n]) {
			break
		}
		count = n
	}
	return Match{Length: count}
}

// Len returns the number of distinct targets.
func (b *Bloom) Len() int {
	return len(b.exact)
}

// SizeBytes sums the filter bit arrays and the exact set keys.
func (b *Bloom) SizeBytes() int {
	total := len(b.exact) * 20
	for _, f := range b.filters {
		total += int(f.Cap() / 8)
	}
	return total
}
