package balance

import (
	"math/big"
	"strings"
)

// Format renders an amount in base units as a decimal coin amount, for
// example Format(1500000000000000000, 18, "ETH") is "1.5 ETH".
func Format(v *big.Int, decimals int, unit string) string {
	if v == nil {
		v = new(big.Int)
	}
	s := new(big.Int).Abs(v).String()
	if decimals > 0 {
		if len(s) <= decimals {
			s = strings.Repeat("0", decimals-len(s)+1) + s
		}
		whole, frac := s[:len(s)-decimals], strings.TrimRight(s[len(s)-decimals:], "0")
		s = whole
		if frac != "" {
			s += "." + frac
		}
	}
	if v.Sign() < 0 {
		s = "-" + s
	}
	if unit == "" {
		return s
	}
	return s + " " + unit
}
