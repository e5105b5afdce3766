package tron

import (
	"fmt"
	"strings"
)

// AddressLength is the length of a mainnet T... address.
const AddressLength = 34

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// DecodeAddress validates a mainnet T... address and returns its 20
// address bytes.
func DecodeAddress(s string) ([]byte, error) {
	if bad := invalidBase58(s); len(bad) > 0 {
		return nil, fmt.Errorf("invalid Base58 character(s) %q in %s", string(bad), s)
	}
	if len(s) != AddressLength || s[0] != 'T' {
		return nil, fmt.Errorf("not a tron mainnet address: %s", s)
	}
	data, err := Base58CheckDecode(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode address %s: %w", s, err)
	}
	if len(data) != 21 || data[0] != TronMainnetPrefix {
		return nil, fmt.Errorf("not a tron mainnet address: %s", s)
	}
	return data[1:], nil
}

// invalidBase58 lists the characters of s outside the Base58 alphabet
// (which leaves out 0, O, I and l).
func invalidBase58(s string) []rune {
	var bad []rune
	for _, c := range s {
		if !strings.ContainsRune(base58Alphabet, c) {
			bad = append(bad, c)
		}
	}
	return bad
}
