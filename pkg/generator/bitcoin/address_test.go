package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

const (
	keyOneHex    = "0000000000000000000000000000000000000000000000000000000000000001"
	keyOneWIF    = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"
	keyOneHash   = "751e76e8199196d454941c45d1b3a323f1433bd6"
	keyOneLegacy = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"
	keyOneSegwit = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
)

func TestDerive(t *testing.T) {
	for _, key := range []string{keyOneHex, keyOneWIF} {
		c, err := Derive(key)
		require.NoError(t, err)
		assert.Equal(t, keyOneWIF, c.PrivateKey)
		assert.Equal(t, keyOneHash, c.Identifier)
	}

	_, err := Derive("not-a-key")
	require.Error(t, err)
}

func TestCodec(t *testing.T) {
	codec := Codec{}
	assert.Equal(t, keyOneLegacy, codec.Display(keyOneHash))

	for _, target := range []string{keyOneLegacy, keyOneSegwit, keyOneHash} {
		id, err := codec.ParseTarget(target)
		require.NoError(t, err, target)
		assert.Equal(t, keyOneHash, id)
	}

	_, err := codec.ParseTarget("3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy")
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	c, err := Generate()
	require.NoError(t, err)
	assert.True(t, generator.IsIdentifier(c.Identifier))

	again, err := Derive(c.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}
