package store

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/BalanceHunter/internal/pipeline"
	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/generator/ethereum"
)

const (
	testKey = "0000000000000000000000000000000000000000000000000000000000000001"
	testID  = "7e5f4552091a69125d5dfcb7b8c2659029395bdf"
)

func found(t *testing.T) []Found {
	t.Helper()
	s := pipeline.Summary{
		Attempts: 99,
		Elapsed:  3 * time.Second,
		Funded: []pipeline.Record{
			{Identifier: testID, PrivateKey: testKey, Balance: big.NewInt(2500000000000000000)},
		},
	}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return FromSummary(uuid.NewString(), generator.Ethereum, ethereum.Codec{}, s, at)
}

func TestFromSummary(t *testing.T) {
	fs := found(t)
	require.Len(t, fs, 1)

	f := fs[0]
	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", f.Address)
	assert.Equal(t, 18, f.Decimals)
	assert.Equal(t, "ETH", f.Unit)
	assert.EqualValues(t, 99, f.Attempts)
	_, err := uuid.Parse(f.RunID)
	assert.NoError(t, err)
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "found.txt")
	w, err := OpenFile(path)
	require.NoError(t, err)

	n, err := Save(context.Background(), w, found(t))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Ethereum Funded Address")
	assert.Contains(t, content, "Address:     0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	assert.Contains(t, content, "Balance:     2.5 ETH")
	assert.Contains(t, content, "Private Key: "+testKey)
	assert.Contains(t, content, "Attempts: 99")
	assert.Contains(t, content, "Found: 2024-05-01 12:00:00")

	// reopening appends
	w, err = OpenFile(path)
	require.NoError(t, err)
	_, err = Save(context.Background(), w, found(t))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "Funded Address"))
}

func TestSQLiteWriter(t *testing.T) {
	ctx := context.Background()
	w, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "found.db"))
	require.NoError(t, err)
	defer w.Close()

	fs := found(t)
	_, err = Save(ctx, w, fs)
	require.NoError(t, err)
	// same run and identifier is ignored
	require.NoError(t, w.Write(ctx, fs[0]))

	var (
		count   int
		network string
		bal     string
	)
	require.NoError(t, w.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM found").Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, w.DB().QueryRowContext(ctx,
		"SELECT network, balance FROM found WHERE identifier = ?", testID).Scan(&network, &bal))
	assert.Equal(t, "Ethereum", network)
	assert.Equal(t, "2500000000000000000", bal)
}

type failingWriter struct{ closed bool }

func (f *failingWriter) Write(context.Context, Found) error { return errors.New("disk full") }
func (f *failingWriter) Close() error                       { f.closed = true; return nil }

func TestMulti(t *testing.T) {
	path := filepath.Join(t.TempDir(), "found.txt")
	fw, err := OpenFile(path)
	require.NoError(t, err)
	bad := &failingWriter{}

	m := Multi{fw, bad}
	n, err := Save(context.Background(), m, found(t))
	assert.Error(t, err)
	assert.Zero(t, n)
	require.NoError(t, m.Close())
	assert.True(t, bad.closed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), testKey)
}
