package balance

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/sethvargo/go-limiter"
	"github.com/sethvargo/go-limiter/memorystore"
)

const limiterKey = "balance"

// Limited spaces calls to the wrapped fetcher with a token bucket. Calls
// wait for the bucket to refill instead of failing.
type Limited struct {
	next  Fetcher
	store limiter.Store
}

// NewLimited allows at most tokens calls per interval.
func NewLimited(next Fetcher, tokens uint64, interval time.Duration) (*Limited, error) {
	if interval <= 0 {
		interval = time.Second
	}
	store, err := memorystore.New(&memorystore.Config{
		Tokens:   tokens,
		Interval: interval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	return &Limited{next: next, store: store}, nil
}

// Balance waits for a token, then calls the wrapped fetcher.
func (l *Limited) Balance(ctx context.Context, identifier string) (*big.Int, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Balance(ctx, identifier)
}

func (l *Limited) wait(ctx context.Context) error {
	for {
		_, _, reset, ok, err := l.store.Take(ctx, limiterKey)
		if err != nil {
			return fmt.Errorf("rate limit error: %w", err)
		}
		if ok {
			return nil
		}

		timer := time.NewTimer(time.Until(time.Unix(0, int64(reset))))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Close stops the limiter's sweeper.
func (l *Limited) Close() {
	_ = l.store.Close(context.Background())
}
