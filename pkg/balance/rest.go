package balance

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/Amr-9/BalanceHunter/pkg/generator/bitcoin"
	"github.com/Amr-9/BalanceHunter/pkg/generator/tron"
)

// Esplora reads confirmed Bitcoin balances from an Esplora REST API
// (blockstream.info/api, mempool.space/api).
type Esplora struct {
	base   string
	client *http.Client
}

// NewEsplora creates an Esplora fetcher. A nil client uses http.DefaultClient.
func NewEsplora(base string, client *http.Client) *Esplora {
	if client == nil {
		client = http.DefaultClient
	}
	return &Esplora{base: strings.TrimRight(base, "/"), client: client}
}

type esploraAddress struct {
	ChainStats struct {
		FundedTxoSum int64 `json:"funded_txo_sum"`
		SpentTxoSum  int64 `json:"spent_txo_sum"`
	} `json:"chain_stats"`
}

// Balance returns funded minus spent outputs of the P2PKH address.
func (e *Esplora) Balance(ctx context.Context, identifier string) (*big.Int, error) {
	var body esploraAddress
	url := e.base + "/address/" + bitcoin.Codec{}.Display(identifier)
	if err := getJSON(ctx, e.client, url, &body); err != nil {
		return nil, err
	}
	return big.NewInt(body.ChainStats.FundedTxoSum - body.ChainStats.SpentTxoSum), nil
}

// TronGrid reads TRX balances from the TronGrid v1 accounts API.
type TronGrid struct {
	base   string
	client *http.Client
}

// NewTronGrid creates a TronGrid fetcher. A nil client uses http.DefaultClient.
func NewTronGrid(base string, client *http.Client) *TronGrid {
	if client == nil {
		client = http.DefaultClient
	}
	return &TronGrid{base: strings.TrimRight(base, "/"), client: client}
}

type tronAccounts struct {
	Success bool `json:"success"`
	Data    []struct {
		Balance int64 `json:"balance"`
	} `json:"data"`
}

// Balance returns the sun balance. Accounts never seen on chain have no data.
func (t *TronGrid) Balance(ctx context.Context, identifier string) (*big.Int, error) {
	var body tronAccounts
	url := t.base + "/v1/accounts/" + tron.Codec{}.Display(identifier)
	if err := getJSON(ctx, t.client, url, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("trongrid returned success=false for %s", identifier)
	}
	if len(body.Data) == 0 {
		return new(big.Int), nil
	}
	return big.NewInt(body.Data[0].Balance), nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: failed to decode response: %w", url, err)
	}
	return nil
}
