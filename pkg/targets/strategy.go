package targets

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy names a target index implementation.
type Strategy string

const (
	StrategyTrie    Strategy = "trie"
	StrategyNearest Strategy = "nearest"
	StrategyBisect  Strategy = "bisect"
	StrategyBloom   Strategy = "bloom"
)

var strategies = map[Strategy]func([]string) (Index, error){
	StrategyTrie:    func(ids []string) (Index, error) { return NewTrie(ids) },
	StrategyNearest: func(ids []string) (Index, error) { return NewNearest(ids) },
	StrategyBisect:  func(ids []string) (Index, error) { return NewBisect(ids) },
	StrategyBloom:   func(ids []string) (Index, error) { return NewBloom(ids, DefaultBloomErrorRate) },
}

// Pick resolves a strategy name. Unknown names fall back to nearest.
func Pick(name string) Strategy {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := strategies[s]; ok {
		return s
	}
	return StrategyNearest
}

// Strategies lists the known strategy names in sorted order.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for s := range strategies {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}

// New builds the index of the given strategy over identifiers.
func New(s Strategy, identifiers []string) (Index, error) {
	build, ok := strategies[s]
	if !ok {
		build = strategies[StrategyNearest]
	}
	idx, err := build(identifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s index: %w", s, err)
	}
	return idx, nil
}
