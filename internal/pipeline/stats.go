package pipeline

import (
	"math/big"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot is a point-in-time view of a run. Fields written by other
// goroutines may lag slightly behind each other.
type Snapshot struct {
	State          State         `json:"state"`
	Elapsed        time.Duration `json:"elapsed_ns"`
	Attempts       uint64        `json:"attempts"`
	GuessRate      float64       `json:"guess_rate"`
	BestLength     int           `json:"best_length"`
	TargetLength   int           `json:"target_length"`
	Pending        int           `json:"pending"`
	Verified       uint64        `json:"verified"`
	LookupFailures uint64        `json:"lookup_failures"`
	Funded         uint64        `json:"funded"`
	TotalBalance   *big.Int      `json:"total_balance"`
}

// Difficulty is the best match length as a percentage of the target length.
func (s Snapshot) Difficulty() float64 {
	if s.TargetLength <= 0 {
		return 0
	}
	return 100 * float64(s.BestLength) / float64(s.TargetLength)
}

// stats holds the counters shared between the generation loop, the
// aggregator and outside readers.
type stats struct {
	start      atomic.Pointer[time.Time]
	end        atomic.Pointer[time.Time]
	attempts   atomic.Uint64
	bestLength atomic.Int64
	verified   atomic.Uint64
	failures   atomic.Uint64
	funded     atomic.Uint64
	total      atomic.Pointer[big.Int]

	mu    sync.Mutex // guards found and total updates together
	found map[string]Record
}

func (s *stats) begin(t time.Time) {
	s.start.Store(&t)
	s.total.Store(new(big.Int))
}

// stop freezes the clock at the end of generation.
func (s *stats) stop(t time.Time) {
	s.end.CompareAndSwap(nil, &t)
}

func (s *stats) elapsed(now time.Time) time.Duration {
	start := s.start.Load()
	if start == nil {
		return 0
	}
	if end := s.end.Load(); end != nil {
		now = *end
	}
	return now.Sub(*start)
}

// addFunded publishes a funded record and the running total that
// includes it.
func (s *stats) addFunded(rec Record, total *big.Int) {
	s.mu.Lock()
	if s.found == nil {
		s.found = make(map[string]Record)
	}
	s.found[rec.Identifier] = rec
	s.total.Store(total)
	s.mu.Unlock()
	s.funded.Add(1)
}

// fundedResults returns the funded records published so far with their
// total.
func (s *stats) fundedResults(processed uint64) Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make(map[string]Record, len(s.found))
	for id, rec := range s.found {
		records[id] = rec
	}
	return Results{Records: records, Total: s.totalBalance(), Processed: processed}
}

func (s *stats) totalBalance() *big.Int {
	if t := s.total.Load(); t != nil {
		return t
	}
	return new(big.Int)
}

func guessRate(attempts uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(attempts) / elapsed.Seconds()
}
