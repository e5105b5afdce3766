package pipeline

import (
	"math/big"
	"time"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/targets"
)

// Frame is the progress state handed to a Sink.
type Frame struct {
	Elapsed   time.Duration
	Attempts  uint64
	Candidate generator.Candidate
	Match     targets.Match
	Best      Best
	Verified  uint64
	Total     *big.Int
}

// Sink renders progress. Commit is true for a new best, which should stay
// on screen instead of being overwritten by the next frame.
type Sink interface {
	Frame(f Frame, commit bool) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(f Frame, commit bool) error

// Frame calls s.
func (s SinkFunc) Frame(f Frame, commit bool) error {
	return s(f, commit)
}

// Reporter throttles progress output to a frame rate.
type Reporter struct {
	sink     Sink
	interval time.Duration
	last     time.Time
}

// NewReporter emits at most fps frames per second. fps <= 0 disables the
// throttle. A nil sink discards everything.
func NewReporter(sink Sink, fps int) *Reporter {
	r := &Reporter{sink: sink}
	if fps > 0 {
		r.interval = time.Second / time.Duration(fps)
	}
	return r
}

// MaybeEmit writes a frame when the interval has passed and always commits
// the frame when improved is set. It reports whether anything was written.
func (r *Reporter) MaybeEmit(now time.Time, f Frame, improved bool) bool {
	if r.sink == nil {
		return false
	}

	emitted := false
	if r.interval <= 0 || now.Sub(r.last) >= r.interval {
		r.last = now
		r.emit(f, false)
		emitted = true
	}
	if improved {
		r.emit(f, true)
		emitted = true
	}
	return emitted
}

// emit never lets a sink failure reach the run.
func (r *Reporter) emit(f Frame, commit bool) {
	defer func() { _ = recover() }()
	_ = r.sink.Frame(f, commit)
}
