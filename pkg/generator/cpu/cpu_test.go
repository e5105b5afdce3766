package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

func TestNewCPUGenerator(t *testing.T) {
	for _, network := range []generator.Network{generator.Ethereum, generator.Bitcoin, generator.Tron} {
		g, err := NewCPUGenerator(network)
		require.NoError(t, err)
		assert.Equal(t, network, g.Network())
		assert.Equal(t, "CPU", g.Name())

		c, err := g.Generate()
		require.NoError(t, err)
		assert.True(t, generator.IsIdentifier(c.Identifier), network.String())

		derived, err := Derive(network, c.PrivateKey)
		require.NoError(t, err)
		assert.Equal(t, c.Identifier, derived.Identifier)

		codec, err := CodecFor(network)
		require.NoError(t, err)
		id, err := codec.ParseTarget(codec.Display(c.Identifier))
		require.NoError(t, err)
		assert.Equal(t, c.Identifier, id)
	}

	_, err := NewCPUGenerator(generator.Network(42))
	require.ErrorIs(t, err, generator.ErrUnknownNetwork)
	_, err = CodecFor(generator.Network(42))
	require.ErrorIs(t, err, generator.ErrUnknownNetwork)
}
