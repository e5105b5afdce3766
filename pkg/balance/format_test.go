package balance

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		v        *big.Int
		decimals int
		unit     string
		want     string
	}{
		{nil, 18, "ETH", "0 ETH"},
		{big.NewInt(0), 18, "ETH", "0 ETH"},
		{big.NewInt(1), 18, "ETH", "0.000000000000000001 ETH"},
		{big.NewInt(1500000000000000000), 18, "ETH", "1.5 ETH"},
		{big.NewInt(2000000000000000000), 18, "ETH", "2 ETH"},
		{big.NewInt(12345), 8, "BTC", "0.00012345 BTC"},
		{big.NewInt(1000000), 6, "TRX", "1 TRX"},
		{big.NewInt(-250), 2, "ETH", "-2.5 ETH"},
		{big.NewInt(42), 0, "", "42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.v, tt.decimals, tt.unit))
	}
}
