package tron

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	c, err := Derive("0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "7e5f4552091a69125d5dfcb7b8c2659029395bdf", c.Identifier)

	address := Codec{}.Display(c.Identifier)
	assert.True(t, strings.HasPrefix(address, "T"))
	raw, err := DecodeAddress(address)
	require.NoError(t, err)
	assert.Len(t, raw, 20)

	for _, target := range []string{address, c.Identifier, "41" + c.Identifier} {
		id, err := Codec{}.ParseTarget(target)
		require.NoError(t, err, target)
		assert.Equal(t, c.Identifier, id)
	}
}

func TestCodecParseTargetErrors(t *testing.T) {
	c, err := Generate()
	require.NoError(t, err)
	address := Codec{}.Display(c.Identifier)

	// flip the last character to break the checksum
	last := address[len(address)-1]
	replacement := byte('2')
	if last == replacement {
		replacement = '3'
	}
	broken := address[:len(address)-1] + string(replacement)
	_, err = Codec{}.ParseTarget(broken)
	require.Error(t, err)

	_, err = Codec{}.ParseTarget("T0OIl")
	require.ErrorContains(t, err, "0OIl")

	_, err = DecodeAddress(address[:20])
	require.Error(t, err)
}
