// Package cpu provides the crypto/rand backed candidate generator and routes
// network-specific derivation to the per-network packages.
package cpu

import (
	"fmt"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/generator/bitcoin"
	"github.com/Amr-9/BalanceHunter/pkg/generator/ethereum"
	"github.com/Amr-9/BalanceHunter/pkg/generator/tron"
)

// CPUGenerator implements the Generator interface on the calling goroutine.
type CPUGenerator struct {
	network  generator.Network
	generate func() (generator.Candidate, error)
}

// NewCPUGenerator creates a generator for the given network.
func NewCPUGenerator(network generator.Network) (*CPUGenerator, error) {
	g := &CPUGenerator{network: network}

	// Route to appropriate derivation based on network
	switch network {
	case generator.Ethereum:
		g.generate = ethereum.Generate
	case generator.Bitcoin:
		g.generate = bitcoin.Generate
	case generator.Tron:
		g.generate = tron.Generate
	default:
		return nil, fmt.Errorf("%w: %d", generator.ErrUnknownNetwork, network)
	}
	return g, nil
}

// Generate creates one random key pair.
func (g *CPUGenerator) Generate() (generator.Candidate, error) {
	return g.generate()
}

// Network returns the generator's network.
func (g *CPUGenerator) Network() generator.Network {
	return g.network
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// CodecFor returns the identifier codec of a network.
func CodecFor(network generator.Network) (generator.Codec, error) {
	switch network {
	case generator.Ethereum:
		return ethereum.Codec{}, nil
	case generator.Bitcoin:
		return bitcoin.Codec{}, nil
	case generator.Tron:
		return tron.Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", generator.ErrUnknownNetwork, network)
	}
}

// Derive rebuilds the candidate of an existing private key.
func Derive(network generator.Network, privateKey string) (generator.Candidate, error) {
	switch network {
	case generator.Ethereum:
		return ethereum.Derive(privateKey)
	case generator.Bitcoin:
		return bitcoin.Derive(privateKey)
	case generator.Tron:
		return tron.Derive(privateKey)
	default:
		return generator.Candidate{}, fmt.Errorf("%w: %d", generator.ErrUnknownNetwork, network)
	}
}
