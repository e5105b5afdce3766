package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Amr-9/BalanceHunter/internal/logging"
	"github.com/Amr-9/BalanceHunter/pkg/balance"
)

// ErrDrainStalled is returned when the verification pool stops making
// progress while draining.
var ErrDrainStalled = errors.New("verification drain stalled")

// Pool verifies queued candidates with a fixed number of workers.
type Pool struct {
	queue   *Queue
	fetcher balance.Fetcher
	workers int
	poll    time.Duration
	stats   *stats

	agg      *aggregator
	deliver  func(Record)
	group    errgroup.Group
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	err      error
}

// NewPool creates a pool that is idle until Start.
func NewPool(queue *Queue, fetcher balance.Fetcher, workers int, poll time.Duration, st *stats) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	p := &Pool{
		queue:   queue,
		fetcher: fetcher,
		workers: workers,
		poll:    poll,
		stats:   st,
		agg:     newAggregator(st, workers),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	p.deliver = func(rec Record) { p.agg.in <- rec }
	return p
}

// Start launches the workers and the aggregator. Lookups are detached from
// ctx cancellation so that queued work still completes after an interrupt.
func (p *Pool) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	go p.agg.run()

	for i := 0; i < p.workers; i++ {
		wctx, _ := logging.WithAttrs(ctx, zap.Int("worker", i))
		p.group.Go(func() error {
			return p.work(wctx)
		})
	}

	go func() {
		p.err = p.group.Wait()
		close(p.agg.in)
		<-p.agg.done
		close(p.done)
	}()
}

// Stop sets the stop signal. Workers finish the remaining queue first.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

func (p *Pool) stopped() bool {
	select {
	case <-p.stop:
		return true
	default:
		return false
	}
}

func (p *Pool) work(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic: %v", r)
		}
	}()

	for {
		item, ok := p.queue.Pop(p.poll)
		if !ok {
			if p.stopped() && p.queue.Len() == 0 {
				return nil
			}
			continue
		}
		p.deliver(p.verify(ctx, item))
	}
}

func (p *Pool) verify(ctx context.Context, item Item) Record {
	rec := Record{Identifier: item.Identifier, PrivateKey: item.PrivateKey}

	bal, err := p.lookup(ctx, item.Identifier)
	if err == nil && (bal == nil || bal.Sign() < 0) {
		err = fmt.Errorf("invalid balance %v", bal)
	}
	if err != nil {
		logging.FromContext(ctx).Debug("balance lookup failed",
			zap.String("identifier", item.Identifier), zap.Error(err))
		p.stats.failures.Add(1)
		rec.Balance = new(big.Int)
		rec.Failed = true
		return rec
	}
	rec.Balance = bal
	return rec
}

func (p *Pool) lookup(ctx context.Context, identifier string) (bal *big.Int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lookup panic: %v", r)
		}
	}()
	return p.fetcher.Balance(ctx, identifier)
}

// Wait blocks until every worker has exited and the aggregator has consumed
// all records. When stall > 0 and no record completes for that long while
// the pool is still running, Wait gives up with ErrDrainStalled and returns
// the funded records verified so far.
func (p *Pool) Wait(stall time.Duration) (Results, error) {
	if stall <= 0 {
		<-p.done
		return p.finish()
	}

	ticker := time.NewTicker(stall)
	defer ticker.Stop()
	last := p.stats.verified.Load()
	for {
		select {
		case <-p.done:
			return p.finish()
		case <-ticker.C:
			now := p.stats.verified.Load()
			if now == last {
				return p.stats.fundedResults(now), fmt.Errorf("%w: no progress in %s with %d queued",
					ErrDrainStalled, stall, p.queue.Len())
			}
			last = now
		}
	}
}

func (p *Pool) finish() (Results, error) {
	res := p.agg.results()
	if p.err != nil {
		return res, fmt.Errorf("%w: %d items left unverified: %w", ErrDrainStalled, p.queue.Len(), p.err)
	}
	return res, nil
}
