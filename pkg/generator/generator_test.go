package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	tests := []struct {
		in   string
		want Network
	}{
		{"", Ethereum},
		{"ETH", Ethereum},
		{"bitcoin", Bitcoin},
		{" trx ", Tron},
	}
	for _, tt := range tests {
		got, err := ParseNetwork(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseNetwork("solana")
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("dd36d7b54d489f4c2c0a7ad57fc7180badd60072"))
	assert.False(t, IsIdentifier("Dd36d7b54d489f4c2c0a7ad57fc7180badd60072"))
	assert.False(t, IsIdentifier("dd36"))
	assert.False(t, IsIdentifier(""))
}

func TestSequence(t *testing.T) {
	seq := NewSequence(Bitcoin, Candidate{Identifier: "a"}, Candidate{Identifier: "b"})
	assert.Equal(t, Bitcoin, seq.Network())

	c, err := seq.Generate()
	require.NoError(t, err)
	assert.Equal(t, "a", c.Identifier)
	c, err = seq.Generate()
	require.NoError(t, err)
	assert.Equal(t, "b", c.Identifier)

	_, err = seq.Generate()
	require.ErrorIs(t, err, ErrSequenceExhausted)
}
