// Package ethereum derives Ethereum identifiers from secp256k1 keys.
package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

// Generate creates a random Ethereum key pair.
func Generate() (generator.Candidate, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return generator.Candidate{}, err
	}
	return fromKey(privateKey), nil
}

// Derive rebuilds the candidate for a hex encoded private key.
func Derive(privateKeyHex string) (generator.Candidate, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.ToLower(privateKeyHex), "0x"))
	if err != nil {
		return generator.Candidate{}, fmt.Errorf("invalid private key: %w", err)
	}
	return fromKey(privateKey), nil
}

func fromKey(privateKey *ecdsa.PrivateKey) generator.Candidate {
	address := crypto.PubkeyToAddress(privateKey.PublicKey)

	var hexBuf [generator.IdentifierLength]byte
	hexEncode(hexBuf[:], address.Bytes())

	return generator.Candidate{
		PrivateKey: privateKeyToHex(privateKey),
		Identifier: string(hexBuf[:]),
	}
}

// hexEncode encodes src into dst as lowercase hexadecimal.
// dst must be at least len(src)*2 bytes.
func hexEncode(dst, src []byte) {
	const hextable = "0123456789abcdef"
	for i, v := range src {
		dst[i*2] = hextable[v>>4]
		dst[i*2+1] = hextable[v&0x0f]
	}
}

// privateKeyToHex converts an Ethereum private key to its hex representation.
func privateKeyToHex(privateKey *ecdsa.PrivateKey) string {
	return hex.EncodeToString(crypto.FromECDSA(privateKey))
}

// Codec renders Ethereum identifiers as checksummed 0x addresses.
type Codec struct{}

// Display returns the EIP-55 checksummed address.
func (Codec) Display(identifier string) string {
	return common.HexToAddress(identifier).Hex()
}

// ParseTarget accepts 0x-prefixed or bare hex addresses in any case.
func (Codec) ParseTarget(s string) (string, error) {
	id := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if !generator.IsIdentifier(id) {
		return "", fmt.Errorf("not an ethereum address: %q", s)
	}
	return id, nil
}

// Decimals returns 18 (wei per ether).
func (Codec) Decimals() int { return 18 }

// Unit returns the coin ticker.
func (Codec) Unit() string { return "ETH" }

// ExplorerURL links the address on etherscan.
func (Codec) ExplorerURL(identifier string) string {
	return "https://etherscan.io/address/0x" + identifier
}
