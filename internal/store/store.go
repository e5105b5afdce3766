// Package store persists funded identifiers found by a hunt.
package store

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/Amr-9/BalanceHunter/internal/pipeline"
	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

// Found is one funded identifier.
type Found struct {
	RunID      string
	Network    generator.Network
	Identifier string
	Address    string
	PrivateKey string
	Balance    *big.Int
	Decimals   int
	Unit       string
	Attempts   uint64
	Elapsed    time.Duration
	FoundAt    time.Time
}

// Writer persists found records.
type Writer interface {
	Write(ctx context.Context, f Found) error
	Close() error
}

// Multi writes every record to all writers.
type Multi []Writer

// Write writes f to each writer and joins the errors.
func (m Multi) Write(ctx context.Context, f Found) error {
	var errs []error
	for _, w := range m {
		errs = append(errs, w.Write(ctx, f))
	}
	return errors.Join(errs...)
}

// Close closes every writer.
func (m Multi) Close() error {
	var errs []error
	for _, w := range m {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}

// FromSummary builds one Found per funded record of a run.
func FromSummary(runID string, network generator.Network, codec generator.Codec, s pipeline.Summary, at time.Time) []Found {
	out := make([]Found, 0, len(s.Funded))
	for _, rec := range s.Funded {
		out = append(out, Found{
			RunID:      runID,
			Network:    network,
			Identifier: rec.Identifier,
			Address:    codec.Display(rec.Identifier),
			PrivateKey: rec.PrivateKey,
			Balance:    rec.Balance,
			Decimals:   codec.Decimals(),
			Unit:       codec.Unit(),
			Attempts:   s.Attempts,
			Elapsed:    s.Elapsed,
			FoundAt:    at,
		})
	}
	return out
}

// Save writes all records and returns how many were written.
func Save(ctx context.Context, w Writer, found []Found) (int, error) {
	for i, f := range found {
		if err := w.Write(ctx, f); err != nil {
			return i, err
		}
	}
	return len(found), nil
}
