package targets

import "unsafe"

// Trie stores every target as a path of hex digits. Each node is a prefix of
// at least one target, so walking the candidate through the trie yields the
// longest shared prefix.
//
// For the targets [abcde, abbcd, abcdf, acdef]:
//
//	a -> b -> b -> c -> d
//	      \-> c -> d -> e
//	                \-> f
//	     c -> d -> e -> f
//
// The trie is small but does not remember which target a path belongs to, so
// its matches never name a target.
type Trie struct {
	root  *trieNode
	size  int
	nodes int
}

type trieNode struct {
	children map[byte]*trieNode
}

// NewTrie builds a trie over identifiers.
func NewTrie(identifiers []string) (*Trie, error) {
	t := &Trie{root: &trieNode{children: map[byte]*trieNode{}}, nodes: 1}
	for _, id := range identifiers {
		if _, err := decode(id); err != nil {
			return nil, err
		}
		t.insert(id)
	}
	if t.size == 0 {
		return nil, ErrNoTargets
	}
	return t, nil
}

func (t *Trie) insert(identifier string) {
	t.size++
	ptr := t.root
	for i := 0; i < len(identifier); i++ {
		next, ok := ptr.children[identifier[i]]
		if !ok {
			next = &trieNode{children: map[byte]*trieNode{}}
			ptr.children[identifier[i]] = next
			t.nodes++
		}
		ptr = next
	}
}

// BestMatch walks the trie as far as the identifier allows.
func (t *Trie) BestMatch(identifier string) Match {
	ptr := t.root
	count := 0
	for i := 0; i < len(identifier); i++ {
		next, ok := ptr.children[identifier[i]]
		if !ok {
			break
		}
		ptr = next
		count++
	}
	return Match{Length: count}
}

// Len returns the number of inserted targets, duplicates included.
func (t *Trie) Len() int {
	return t.size
}

// SizeBytes estimates node and map overhead.
func (t *Trie) SizeBytes() int {
	const mapEntry = 16 // key + pointer, ignoring bucket slack
	const mapHeader = 48
	node := int(unsafe.Sizeof(trieNode{})) + mapHeader
	// every node but the root is one map entry in its parent
	return t.nodes*node + (t.nodes-1)*mapEntry
}
