package balance

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Ethereum queries eth_getBalance at the latest block over JSON-RPC.
type Ethereum struct {
	client *ethclient.Client
}

// DialEthereum connects to an Ethereum JSON-RPC endpoint.
func DialEthereum(ctx context.Context, rpcURL string) (*Ethereum, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}
	return &Ethereum{client: client}, nil
}

// Balance returns the wei balance of identifier.
func (e *Ethereum) Balance(ctx context.Context, identifier string) (*big.Int, error) {
	return e.client.BalanceAt(ctx, common.HexToAddress(identifier), nil)
}

// Close closes the RPC connection.
func (e *Ethereum) Close() {
	e.client.Close()
}
