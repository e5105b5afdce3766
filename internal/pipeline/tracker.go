package pipeline

import (
	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/targets"
)

// Best is the highest scoring candidate seen so far.
type Best struct {
	Candidate generator.Candidate
	Match     targets.Match
	Attempt   uint64 // 1-based attempt that produced it, 0 before any
}

// Tracker keeps the best score of a run. It is owned by the generation
// goroutine and is not safe for concurrent use.
type Tracker struct {
	best Best
}

// NewTracker starts from the minimum score (0, absent).
func NewTracker() *Tracker {
	return &Tracker{}
}

// Consider records the observation when it is at least as good as the
// current best. Ties replace the best (last writer wins).
func (t *Tracker) Consider(attempt uint64, c generator.Candidate, m targets.Match) bool {
	if m.Compare(t.best.Match) < 0 {
		return false
	}
	t.best = Best{Candidate: c, Match: m, Attempt: attempt}
	return true
}

// Best returns the current best.
func (t *Tracker) Best() Best {
	return t.best
}
