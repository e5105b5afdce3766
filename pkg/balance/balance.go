// Package balance looks up the on-chain balance of an identifier.
//
// Fetchers return balances in the network's base unit (wei, satoshi, sun).
// Callers in the verification pool treat every error as a zero balance, so
// implementations are free to fail fast.
package balance

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

// ErrRateLimited is returned when an upstream API rejects a request with 429.
var ErrRateLimited = errors.New("rate limited by upstream")

// Fetcher returns the balance held by an identifier.
type Fetcher interface {
	Balance(ctx context.Context, identifier string) (*big.Int, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, identifier string) (*big.Int, error)

// Balance calls f.
func (f FetcherFunc) Balance(ctx context.Context, identifier string) (*big.Int, error) {
	return f(ctx, identifier)
}

// Offline reports a zero balance for everything. It backs runs without an
// endpoint.
type Offline struct{}

// Balance returns zero.
func (Offline) Balance(context.Context, string) (*big.Int, error) {
	return new(big.Int), nil
}

// Timeout bounds every call of the wrapped fetcher.
type Timeout struct {
	Next    Fetcher
	Timeout time.Duration
}

// Balance calls Next with a deadline of Timeout.
func (t Timeout) Balance(ctx context.Context, identifier string) (*big.Int, error) {
	if t.Timeout <= 0 {
		return t.Next.Balance(ctx, identifier)
	}
	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()
	return t.Next.Balance(ctx, identifier)
}

// Options configures New.
type Options struct {
	Endpoint string        // RPC or REST base URL; empty selects Offline
	Rate     int           // max requests per Interval, 0 disables limiting
	Interval time.Duration // rate window, defaults to one second
	Timeout  time.Duration // per lookup deadline
}

// New builds the fetcher stack for a network: the network client, then the
// per-call timeout, then the rate limiter.
func New(ctx context.Context, network generator.Network, opts Options) (Fetcher, error) {
	var f Fetcher
	switch {
	case opts.Endpoint == "":
		f = Offline{}
	case network == generator.Ethereum:
		eth, err := DialEthereum(ctx, opts.Endpoint)
		if err != nil {
			return nil, err
		}
		f = eth
	case network == generator.Bitcoin:
		f = NewEsplora(opts.Endpoint, nil)
	case network == generator.Tron:
		f = NewTronGrid(opts.Endpoint, nil)
	default:
		return nil, fmt.Errorf("%w: %s", generator.ErrUnknownNetwork, network)
	}

	// the deadline covers the network call only, not the wait for a token
	f = Timeout{Next: f, Timeout: opts.Timeout}
	if opts.Rate > 0 {
		limited, err := NewLimited(f, uint64(opts.Rate), opts.Interval)
		if err != nil {
			return nil, err
		}
		f = limited
	}
	return f, nil
}

// Close releases resources held by f, when it holds any.
func Close(f Fetcher) {
	switch v := f.(type) {
	case Timeout:
		Close(v.Next)
	case *Limited:
		v.Close()
		Close(v.next)
	case interface{ Close() }:
		v.Close()
	}
}
