// Package bitcoin derives P2PKH identifiers from secp256k1 keys.
// The identifier is HASH160 of the compressed public key, which is shared by
// the legacy (1...) and native SegWit (bc1q...) encodings of the same key.
package bitcoin

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/crypto/ripemd160"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

// Generate creates a random Bitcoin key pair.
func Generate() (generator.Candidate, error) {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return generator.Candidate{}, err
	}
	return fromKey(privKey)
}

// Derive rebuilds the candidate for a WIF or hex encoded private key.
func Derive(key string) (generator.Candidate, error) {
	key = strings.TrimSpace(key)
	if wif, err := btcutil.DecodeWIF(key); err == nil {
		return fromKey(wif.PrivKey)
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(key), "0x"))
	if err != nil || len(raw) != 32 {
		return generator.Candidate{}, fmt.Errorf("invalid private key: expected WIF or 32-byte hex")
	}
	privKey, _ := btcec.PrivKeyFromBytes(raw)
	return fromKey(privKey)
}

func fromKey(privKey *btcec.PrivateKey) (generator.Candidate, error) {
	wif, err := PrivateKeyToWIF(privKey)
	if err != nil {
		return generator.Candidate{}, err
	}
	return generator.Candidate{
		PrivateKey: wif,
		Identifier: hex.EncodeToString(hash160(privKey.PubKey().SerializeCompressed())),
	}, nil
}

// PrivateKeyToWIF converts a private key to Wallet Import Format (WIF).
// Uses compressed format (starts with K or L on mainnet).
func PrivateKeyToWIF(privKey *btcec.PrivateKey) (string, error) {
	wif, err := btcutil.NewWIF(privKey, &chaincfg.MainNetParams, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

// hash160 computes RIPEMD160(SHA256(data))
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	ripemd := ripemd160.New()
	ripemd.Write(sha[:])
	return ripemd.Sum(nil)
}

// Codec renders identifiers as mainnet P2PKH addresses.
type Codec struct{}

// Display returns the legacy (1...) address for the identifier.
func (Codec) Display(identifier string) string {
	raw, err := hex.DecodeString(identifier)
	if err != nil {
		return identifier
	}
	addr, err := btcutil.NewAddressPubKeyHash(raw, &chaincfg.MainNetParams)
	if err != nil {
		return identifier
	}
	return addr.EncodeAddress()
}

// ParseTarget accepts P2PKH, P2WPKH or a raw 40 character HASH160.
func (Codec) ParseTarget(s string) (string, error) {
	s = strings.TrimSpace(s)
	if id := strings.ToLower(s); generator.IsIdentifier(id) {
		return id, nil
	}

	addr, err := btcutil.DecodeAddress(s, &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("failed to decode address %s: %w", s, err)
	}

	switch a := addr.(type) {
	case *btcutil.AddressPubKeyHash:
		return hex.EncodeToString(a.Hash160()[:]), nil
	case *btcutil.AddressWitnessPubKeyHash:
		return hex.EncodeToString(a.Hash160()[:]), nil
	default:
		return "", fmt.Errorf("unsupported address type: %T for address %s", addr, s)
	}
}

// Decimals returns 8 (satoshi per bitcoin).
func (Codec) Decimals() int { return 8 }

// Unit returns the coin ticker.
func (Codec) Unit() string { return "BTC" }

// ExplorerURL links the address on mempool.space.
func (c Codec) ExplorerURL(identifier string) string {
	return "https://mempool.space/address/" + c.Display(identifier)
}
