// Package generator defines the candidate key-pair source used by the hunt.
// Every supported network derives a 20-byte public identifier from a
// secp256k1 key, so identifiers share one representation: 40 lowercase hex
// characters.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

// IdentifierLength is the number of hex characters in an identifier.
const IdentifierLength = 40

// ErrUnknownNetwork is returned when a network name cannot be resolved.
var ErrUnknownNetwork = errors.New("unknown network")

// Network represents the blockchain network for key generation.
type Network int

const (
	Ethereum Network = iota // Ethereum (secp256k1, Keccak-256, Hex)
	Bitcoin                 // Bitcoin (secp256k1, SHA256+RIPEMD160, P2PKH)
	Tron                    // Tron (secp256k1, Keccak-256, Base58Check)
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Ethereum:
		return "Ethereum"
	case Bitcoin:
		return "Bitcoin"
	case Tron:
		return "Tron"
	default:
		return "Unknown"
	}
}

// ParseNetwork resolves a case-insensitive network name or ticker.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ethereum", "eth":
		return Ethereum, nil
	case "bitcoin", "btc":
		return Bitcoin, nil
	case "tron", "trx":
		return Tron, nil
	default:
		return Ethereum, fmt.Errorf("%w: %q (valid: ethereum, bitcoin, tron)", ErrUnknownNetwork, name)
	}
}

// Candidate is one generated key pair.
type Candidate struct {
	PrivateKey string // Network-specific private key encoding (hex or WIF)
	Identifier string // 40 lowercase hex characters
}

// Generator produces candidates. Implementations are used from a single
// goroutine and must not block observably.
type Generator interface {
	// Generate returns the next candidate.
	Generate() (Candidate, error)

	// Network returns the network the candidates belong to.
	Network() Network
}

// Codec converts between identifiers and the user-facing forms of a network.
type Codec interface {
	// Display renders an identifier as a network address.
	Display(identifier string) string

	// ParseTarget normalizes a user supplied address (display form or raw hex)
	// into an identifier.
	ParseTarget(s string) (string, error)

	// Decimals is the number of base units per coin as a power of ten.
	Decimals() int

	// Unit is the coin ticker.
	Unit() string

	// ExplorerURL links an identifier on a public block explorer.
	ExplorerURL(identifier string) string
}

// IsIdentifier reports whether s is a well-formed identifier.
func IsIdentifier(s string) bool {
	if len(s) != IdentifierLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// Sequence replays a fixed list of candidates and then fails. It backs
// deterministic runs and tests.
type Sequence struct {
	net   Network
	items []Candidate
	next  int
}

// ErrSequenceExhausted is returned once a Sequence has no candidates left.
var ErrSequenceExhausted = errors.New("candidate sequence exhausted")

// NewSequence creates a Sequence generator.
func NewSequence(net Network, items ...Candidate) *Sequence {
	return &Sequence{net: net, items: items}
}

// Generate returns the next candidate of the sequence.
func (s *Sequence) Generate() (Candidate, error) {
	if s.next >= len(s.items) {
		return Candidate{}, ErrSequenceExhausted
	}
	c := s.items[s.next]
	s.next++
	return c, nil
}

// Network returns the sequence's network.
func (s *Sequence) Network() Network {
	return s.net
}
