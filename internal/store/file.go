package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Amr-9/BalanceHunter/pkg/balance"
)

const fileTemplate = `%s Funded Address
=======================

Address:     %s
Balance:     %s
Private Key: %s

Statistics:
  Run:      %s
  Time:     %s
  Attempts: %d

Found: %s

WARNING: Keep this private key secret and secure!

`

// FileWriter appends a readable block per record to a file only the
// owner can read.
type FileWriter struct {
	mu sync.Mutex
	f  *os.File
}

// OpenFile opens path for appending, creating it with mode 0600.
func OpenFile(path string) (*FileWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &FileWriter{f: f}, nil
}

// Write appends one record.
func (w *FileWriter) Write(_ context.Context, f Found) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := fmt.Fprintf(w.f, fileTemplate,
		f.Network, f.Address,
		balance.Format(f.Balance, f.Decimals, f.Unit),
		f.PrivateKey,
		f.RunID, f.Elapsed.Round(time.Millisecond), f.Attempts,
		f.FoundAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close syncs and closes the file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.f.Sync(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
