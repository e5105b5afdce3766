package pipeline

import (
	"math/big"
	"sort"
)

// Record is the verified balance of one identifier. Balance is zero when
// the lookup failed.
type Record struct {
	Identifier string
	PrivateKey string
	Balance    *big.Int
	Failed     bool
}

// Results is the final state of the aggregate store.
type Results struct {
	Records   map[string]Record
	Total     *big.Int
	Processed uint64
}

// Funded returns the records holding a positive balance, ordered by
// identifier.
func (r Results) Funded() []Record {
	var out []Record
	for _, rec := range r.Records {
		if rec.Balance != nil && rec.Balance.Sign() > 0 {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}

// aggregator is the only owner of the record map and the running total.
// Workers hand records over the in channel; readers see the published
// counters in stats.
type aggregator struct {
	in      chan Record
	stats   *stats
	records map[string]Record
	total   *big.Int
	count   uint64
	done    chan struct{}
}

func newAggregator(st *stats, buffer int) *aggregator {
	return &aggregator{
		in:      make(chan Record, buffer),
		stats:   st,
		records: make(map[string]Record),
		total:   new(big.Int),
		done:    make(chan struct{}),
	}
}

// run consumes records until in is closed.
func (a *aggregator) run() {
	defer close(a.done)
	for rec := range a.in {
		a.count++
		if _, seen := a.records[rec.Identifier]; !seen {
			a.records[rec.Identifier] = rec
			if rec.Balance.Sign() > 0 {
				a.total.Add(a.total, rec.Balance)
				a.stats.addFunded(rec, new(big.Int).Set(a.total))
			}
		}
		a.stats.verified.Store(a.count)
	}
}

// results is only valid after done is closed.
func (a *aggregator) results() Results {
	return Results{
		Records:   a.records,
		Total:     new(big.Int).Set(a.total),
		Processed: a.count,
	}
}
