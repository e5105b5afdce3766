// Package pipeline runs the generate, score and verify loop.
//
// A single generation goroutine produces candidates as fast as it can,
// scores them against the target index and pushes every one of them onto an
// unbounded queue. A fixed pool of workers drains that queue through a
// (typically slow, rate limited) balance fetcher and hands the results to an
// aggregator goroutine. Whatever ends the generation loop, the same drain
// runs before the summary is produced, so no enqueued candidate is lost.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Amr-9/BalanceHunter/internal/logging"
	"github.com/Amr-9/BalanceHunter/pkg/balance"
	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/targets"
)

const (
	DefaultWorkers      = 8
	DefaultFPS          = 60
	DefaultPollInterval = 100 * time.Millisecond
	DefaultStallTimeout = time.Minute
)

// Config bounds a run.
type Config struct {
	Timeout       time.Duration // <= 0 runs forever
	MaxCandidates uint64        // 0 is unlimited
	TargetLength  int           // match length that counts as perfect
	FPS           int           // <= 0 reports every iteration
	Workers       int
	PollInterval  time.Duration
	StallTimeout  time.Duration // <= 0 waits for the drain without limit
}

// DefaultConfig returns the bounds of an unlimited run over 40 character
// identifiers.
func DefaultConfig() Config {
	return Config{
		Timeout:      -1,
		TargetLength: generator.IdentifierLength,
		FPS:          DefaultFPS,
		Workers:      DefaultWorkers,
		PollInterval: DefaultPollInterval,
		StallTimeout: DefaultStallTimeout,
	}
}

// Outcome is the reason generation stopped.
type Outcome int

const (
	OutcomeNone Outcome = iota
	PerfectMatch
	TimedOut
	Exhausted
	Interrupted
	GeneratorFailed
)

func (o Outcome) String() string {
	switch o {
	case PerfectMatch:
		return "perfect match"
	case TimedOut:
		return "timed out"
	case Exhausted:
		return "max guesses reached"
	case Interrupted:
		return "interrupted"
	case GeneratorFailed:
		return "generator failed"
	default:
		return "none"
	}
}

// State is the lifecycle stage of a pipeline.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

// MarshalText renders the state name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Summary is the result of a run.
type Summary struct {
	Outcome        Outcome
	Attempts       uint64
	Enqueued       uint64
	Elapsed        time.Duration
	GuessRate      float64
	Best           Best
	TargetLength   int
	Verified       uint64
	LookupFailures uint64
	Total          *big.Int
	Funded         []Record
	Results        Results
}

// Pipeline wires one run together. It is single use.
type Pipeline struct {
	cfg      Config
	gen      generator.Generator
	index    targets.Index
	reporter *Reporter

	queue   *Queue
	pool    *Pool
	tracker *Tracker
	stats   stats
	state   atomic.Int32

	halt      chan struct{}
	haltOnce  sync.Once
	generated chan struct{}
	drainOnce sync.Once
	results   Results
	drainErr  error
}

// New creates a pipeline. The index must already be built.
func New(cfg Config, gen generator.Generator, index targets.Index, fetcher balance.Fetcher, sink Sink) (*Pipeline, error) {
	if gen == nil {
		return nil, errors.New("pipeline: nil generator")
	}
	if index == nil {
		return nil, errors.New("pipeline: nil target index")
	}
	if fetcher == nil {
		fetcher = balance.Offline{}
	}
	if cfg.TargetLength <= 0 {
		cfg.TargetLength = generator.IdentifierLength
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	p := &Pipeline{
		cfg:       cfg,
		gen:       gen,
		index:     index,
		reporter:  NewReporter(sink, cfg.FPS),
		queue:     NewQueue(),
		tracker:   NewTracker(),
		halt:      make(chan struct{}),
		generated: make(chan struct{}),
	}
	p.pool = NewPool(p.queue, fetcher, cfg.Workers, cfg.PollInterval, &p.stats)
	return p, nil
}

// Run generates candidates until a terminal condition, then drains the
// verification pool. The summary is always returned; the error is set when
// the generator failed or the drain stalled.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return Summary{}, errors.New("pipeline: already started")
	}

	log := logging.FromContext(ctx)
	start := time.Now()
	p.stats.begin(start)
	p.pool.Start(ctx)
	log.Info("hunt started",
		zap.Stringer("network", p.gen.Network()),
		zap.Int("targets", p.index.Len()),
		zap.Int("workers", p.cfg.Workers))

	outcome, genErr := p.generate(ctx, start)
	end := time.Now()
	p.stats.stop(end)
	elapsed := end.Sub(start)
	close(p.generated)

	log.Info("generation stopped",
		zap.Stringer("outcome", outcome),
		zap.Uint64("attempts", p.stats.attempts.Load()),
		zap.Int("pending", p.queue.Len()))

	results, drainErr := p.Drain()

	best := p.tracker.Best()
	attempts := p.stats.attempts.Load()
	summary := Summary{
		Outcome:        outcome,
		Attempts:       attempts,
		Enqueued:       p.queue.Pushed(),
		Elapsed:        elapsed,
		GuessRate:      guessRate(attempts, elapsed),
		Best:           best,
		TargetLength:   p.cfg.TargetLength,
		Verified:       results.Processed,
		LookupFailures: p.stats.failures.Load(),
		Total:          results.Total,
		Funded:         results.Funded(),
		Results:        results,
	}
	if summary.Total == nil {
		summary.Total = new(big.Int)
	}

	if err := errors.Join(genErr, drainErr); err != nil {
		log.Error("hunt failed", zap.Error(err))
		return summary, err
	}
	log.Info("hunt finished",
		zap.Uint64("verified", summary.Verified),
		zap.Stringer("total", summary.Total))
	return summary, nil
}

// generate runs the loop until one of the terminal conditions holds. The
// checks run in fixed order at the top of every iteration.
func (p *Pipeline) generate(ctx context.Context, start time.Time) (Outcome, error) {
	var attempts uint64
	for {
		now := time.Now()
		switch {
		case p.tracker.Best().Match.Perfect(p.cfg.TargetLength):
			return PerfectMatch, nil
		case p.cfg.Timeout > 0 && now.Sub(start) > p.cfg.Timeout:
			return TimedOut, nil
		case p.cfg.MaxCandidates > 0 && attempts >= p.cfg.MaxCandidates:
			return Exhausted, nil
		case ctx.Err() != nil || p.halted():
			return Interrupted, nil
		}

		c, err := p.gen.Generate()
		if err != nil {
			return GeneratorFailed, fmt.Errorf("generate candidate: %w", err)
		}
		attempts++
		p.stats.attempts.Store(attempts)

		m := targets.Score(c.Identifier, p.index)
		p.queue.Push(Item{Identifier: c.Identifier, PrivateKey: c.PrivateKey})

		improved := p.tracker.Consider(attempts, c, m)
		if improved {
			p.stats.bestLength.Store(int64(m.Length))
		}

		p.reporter.MaybeEmit(now, Frame{
			Elapsed:   now.Sub(start),
			Attempts:  attempts,
			Candidate: c,
			Match:     m,
			Best:      p.tracker.Best(),
			Verified:  p.stats.verified.Load(),
			Total:     p.stats.totalBalance(),
		}, improved)
	}
}

func (p *Pipeline) halted() bool {
	select {
	case <-p.halt:
		return true
	default:
		return false
	}
}

// Drain stops the pool once the queue is empty and collects the final
// results. Called while Run is generating, it interrupts the loop at the
// next iteration boundary first. Only the first call does any work; later
// calls return the same results.
func (p *Pipeline) Drain() (Results, error) {
	p.haltOnce.Do(func() { close(p.halt) })
	if p.state.CompareAndSwap(int32(StateIdle), int32(StateDraining)) {
		p.pool.Start(context.Background())
		close(p.generated)
	}
	<-p.generated

	p.drainOnce.Do(func() {
		p.state.Store(int32(StateDraining))
		p.pool.Stop()
		p.results, p.drainErr = p.pool.Wait(p.cfg.StallTimeout)
		p.state.Store(int32(StateDone))
	})
	return p.results, p.drainErr
}

// State returns the lifecycle stage.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Stats returns a snapshot of the run's counters. It is safe to call from
// any goroutine. Elapsed stops advancing once generation ends.
func (p *Pipeline) Stats() Snapshot {
	attempts := p.stats.attempts.Load()
	elapsed := p.stats.elapsed(time.Now())
	return Snapshot{
		State:          p.State(),
		Elapsed:        elapsed,
		Attempts:       attempts,
		GuessRate:      guessRate(attempts, elapsed),
		BestLength:     int(p.stats.bestLength.Load()),
		TargetLength:   p.cfg.TargetLength,
		Pending:        p.queue.Len(),
		Verified:       p.stats.verified.Load(),
		LookupFailures: p.stats.failures.Load(),
		Funded:         p.stats.funded.Load(),
		TotalBalance:   p.stats.totalBalance(),
	}
}
