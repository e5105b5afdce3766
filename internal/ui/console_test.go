package ui

import (
	"bytes"
	"errors"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/BalanceHunter/internal/pipeline"
	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/generator/ethereum"
	"github.com/Amr-9/BalanceHunter/pkg/targets"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const (
	testKey = "0000000000000000000000000000000000000000000000000000000000000001"
	testID  = "7e5f4552091a69125d5dfcb7b8c2659029395bdf"
)

func TestFrame(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, ethereum.Codec{}, false)

	f := pipeline.Frame{
		Elapsed:   1500 * time.Millisecond,
		Attempts:  255,
		Candidate: generator.Candidate{PrivateKey: testKey, Identifier: testID},
		Match:     targets.Match{Length: 3, Target: "7e5" + strings.Repeat("0", 37)},
	}
	require.NoError(t, c.Frame(f, false))
	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "\r00001.500000 000000ff "+testKey+"   3 "+testID+" 7e50"))
	assert.False(t, strings.HasSuffix(line, "\n"))

	buf.Reset()
	require.NoError(t, c.Frame(f, true))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	buf.Reset()
	f.Match = targets.Match{Length: 2}
	require.NoError(t, c.Frame(f, false))
	assert.True(t, strings.HasSuffix(buf.String(), testID+" -"))
}

func TestQuietConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, ethereum.Codec{}, true)

	c.Header()
	require.NoError(t, c.Frame(pipeline.Frame{}, true))
	assert.Empty(t, buf.String())
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, ethereum.Codec{}, false).Header()

	fields := strings.Fields(buf.String())
	assert.Equal(t, []string{"duration", "attempts", "private-key", "str", "address", "closest"}, fields)
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, ethereum.Codec{}, false)

	closest := "7e5f" + strings.Repeat("0", 36)
	c.Summary(pipeline.Summary{
		Outcome:      pipeline.Exhausted,
		Attempts:     1234,
		Elapsed:      2 * time.Second,
		GuessRate:    617,
		TargetLength: 40,
		Verified:     1234,
		Total:        big.NewInt(1500000000000000000),
		Best: pipeline.Best{
			Candidate: generator.Candidate{PrivateKey: testKey, Identifier: testID},
			Match:     targets.Match{Length: 4, Target: closest},
			Attempt:   7,
		},
		Funded: []pipeline.Record{{Identifier: testID, PrivateKey: testKey, Balance: big.NewInt(1500000000000000000)}},
	}, 3)

	out := buf.String()
	assert.Contains(t, out, "Total guesses       : 1,234")
	assert.Contains(t, out, "Outcome             : max guesses reached")
	assert.Contains(t, out, "Duration            : 2.0s")
	assert.Contains(t, out, "Guess / sec         : 617/s")
	assert.Contains(t, out, "Total balance       : 1.5 ETH")
	assert.Contains(t, out, "address             : 0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	assert.Contains(t, out, "closest             : https://etherscan.io/address/0x"+closest)
	assert.Contains(t, out, "Strength            : 4 of 40 digits (10.00%)")
	assert.Contains(t, out, "Funded")
	assert.Contains(t, out, testKey)
}

func TestSummaryWithoutGuesses(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, ethereum.Codec{}, true).Summary(pipeline.Summary{TargetLength: 40}, 1)

	out := buf.String()
	assert.Contains(t, out, "Strength            : 0 of 40 digits (0.00%)")
	assert.NotContains(t, out, "Funded")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, ethereum.Codec{}, true).Error(errors.New("drain stalled"))
	assert.Equal(t, "error: drain stalled\n", buf.String())
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "12,345,678", FormatNumber(12345678))

	assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "2.5s", FormatDuration(2500*time.Millisecond))
	assert.Equal(t, "3m 5s", FormatDuration(3*time.Minute+5*time.Second))
	assert.Equal(t, "1h 1m", FormatDuration(61*time.Minute))

	assert.Equal(t, "12/s", FormatHashRate(12))
	assert.Equal(t, "1.5K/s", FormatHashRate(1500))
	assert.Equal(t, "2.0M/s", FormatHashRate(2e6))

	assert.Equal(t, "20 of 40 digits (50.00%)", Strength(20, 40))
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer

	got, err := Prompt(strings.NewReader("  abc \n"), &out, "Private key")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
	assert.Contains(t, out.String(), "Private key")

	got, err = Prompt(strings.NewReader("no-newline"), &out, "x")
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)

	_, err = Prompt(strings.NewReader(""), &out, "x")
	assert.ErrorIs(t, err, ErrNoInput)
}
