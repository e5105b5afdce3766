package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestDerive(t *testing.T) {
	key := "0000000000000000000000000000000000000000000000000000000000000001"

	tests := []struct {
		network string
		want    []string
	}{
		{"ethereum", []string{"7e5f4552091a69125d5dfcb7b8c2659029395bdf", "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"}},
		{"bitcoin", []string{"751e76e8199196d454941c45d1b3a323f1433bd6", "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"}},
		{"tron", []string{"7e5f4552091a69125d5dfcb7b8c2659029395bdf", "https://tronscan.org"}},
	}
	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			out, err := execute(t, "", "derive", "--network", tt.network, key)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestDeriveFromPrompt(t *testing.T) {
	out, err := execute(t, "0x0000000000000000000000000000000000000000000000000000000000000001\n", "derive")
	require.NoError(t, err)
	assert.Contains(t, out, "7e5f4552091a69125d5dfcb7b8c2659029395bdf")
}

func TestDeriveRejectsBadKey(t *testing.T) {
	_, err := execute(t, "", "derive", "not-a-key")
	assert.Error(t, err)
}

func TestHuntOffline(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "",
		"--max-guesses", "25",
		"--no-port",
		"--quiet",
		"--log-level", "error",
		"--found-file", filepath.Join(dir, "found.txt"),
		"0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Attacking specific Ethereum addresses:")
	assert.Contains(t, out, `Using "nearest" strategy`)
	assert.Contains(t, out, "Generating Ethereum keys on CPU with")
	assert.Contains(t, out, "Outcome             : max guesses reached")
	assert.Contains(t, out, "Total guesses       : 25")
	assert.Contains(t, out, "Verified            : 25")
	assert.Contains(t, out, "Total balance       : 0 ETH")

	// nothing funded, nothing written
	_, err = os.Stat(filepath.Join(dir, "found.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestHuntFromAddressFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte("# btc\n1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH\n"), 0o600))

	out, err := execute(t, "",
		"--network", "btc",
		"--strategy", "bloom",
		"--addresses", path,
		"--max-guesses", "10",
		"--no-port",
		"--fps", "0",
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Loading known public Bitcoin addresses:")
	assert.Contains(t, out, "private-key")
	assert.Contains(t, out, "Total guesses       : 10")
}

func TestHuntRejectsInvalidConfig(t *testing.T) {
	_, err := execute(t, "", "--network", "dogecoin", "--no-port")
	assert.Error(t, err)

	_, err = execute(t, "", "--no-port", "--max-guesses", "1", "not-an-address")
	assert.Error(t, err)
}

func TestHuntReportsFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	out, err := execute(t, "",
		"--addresses", missing,
		"--no-port",
		"--log-level", "error",
	)
	require.Error(t, err)
	assert.Contains(t, out, "Loading known public Ethereum addresses:")
	assert.Equal(t, 1, strings.Count(out, "error: "))
	assert.Contains(t, out, "error: "+err.Error())
	assert.NotContains(t, out, "Error:")
}
