// Package tron derives Tron identifiers from secp256k1 keys.
package tron

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

// TronMainnetPrefix is the address prefix for Tron mainnet (0x41)
const TronMainnetPrefix = 0x41

// Generate creates a random Tron key pair.
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

// fromKey uses the last 20 bytes of Keccak256(pubKey[1:]), the same bytes as
// an Ethereum address.
func fromKey(privateKey *ecdsa.PrivateKey) generator.Candidate {
	address := crypto.PubkeyToAddress(privateKey.PublicKey)
	return generator.Candidate{
		PrivateKey: PrivateKeyToHex(crypto.FromECDSA(privateKey)),
		Identifier: PrivateKeyToHex(address.Bytes()),
	}
}

// Base58CheckEncode encodes data with a 4-byte checksum in Base58.
// This is the same encoding used by Bitcoin.
func Base58CheckEncode(data []byte) string {
	full := make([]byte, 0, len(data)+4)
	full = append(full, data...)
	full = append(full, checksum(data)...)
	return base58.Encode(full)
}

// Base58CheckDecode reverses Base58CheckEncode and verifies the checksum.
func Base58CheckDecode(s string) ([]byte, error) {
	full, err := base58.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(full) < 5 {
		return nil, fmt.Errorf("base58check payload too short")
	}
	data, sum := full[:len(full)-4], full[len(full)-4:]
	if !bytes.Equal(sum, checksum(data)) {
		return nil, fmt.Errorf("base58check checksum mismatch")
	}
	return data, nil
}

func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// PrivateKeyToHex converts key bytes to a lowercase hex string.
func PrivateKeyToHex(privKeyBytes []byte) string {
	const hextable = "0123456789abcdef"
	result := make([]byte, len(privKeyBytes)*2)
	for i, v := range privKeyBytes {
		result[i*2] = hextable[v>>4]
		result[i*2+1] = hextable[v&0x0f]
	}
	return string(result)
}

// Codec renders identifiers as T... Base58Check addresses.
type Codec struct{}

// Display returns the mainnet Base58Check address. All Tron addresses start with 'T'.
func (Codec) Display(identifier string) string {
	raw, err := hex.DecodeString(identifier)
	if err != nil {
		return identifier
	}
	data := make([]byte, 21)
	data[0] = TronMainnetPrefix
	copy(data[1:], raw)
	return Base58CheckEncode(data)
}

// ParseTarget accepts T... addresses, 41-prefixed hex or bare 40 character hex.
func (Codec) ParseTarget(s string) (string, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if generator.IsIdentifier(lower) {
		return lower, nil
	}
	if len(lower) == 42 && strings.HasPrefix(lower, "41") && generator.IsIdentifier(lower[2:]) {
		return lower[2:], nil
	}

	raw, err := DecodeAddress(s)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Decimals returns 6 (sun per TRX).
func (Codec) Decimals() int { return 6 }

// Unit returns the coin ticker.
func (Codec) Unit() string { return "TRX" }

// ExplorerURL links the address on tronscan.
func (c Codec) ExplorerURL(identifier string) string {
	return "https://tronscan.org/#/address/" + c.Display(identifier)
}
