package secsearch

import "sort"

// trieNode is a single trie level: children keyed by rune, plus a flag
// marking that an inserted word terminates here.
type trieNode struct {
	children map[rune]*trieNode
	terminal bool
}

// Trie is a prefix tree over lowercase word tokens. It backs stop-word
// filtering and fuzzy-match candidate generation.
type Trie struct {
	root *trieNode
	size int
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: &trieNode{children: make(map[rune]*trieNode)}}
}

// Insert adds a word to the trie. Inserting a word twice is a no-op.
func (t *Trie) Insert(word string) {
	node := t.root
	for _, ch := range word {
		child, ok := node.children[ch]
		if !ok {
			child = &trieNode{children: make(map[rune]*trieNode)}
			node.children[ch] = child
		}
		node = child
	}
	if !node.terminal {
		node.terminal = true
		t.size++
	}
}

// Contains reports whether the exact word was inserted.
func (t *Trie) Contains(word string) bool {
	node := t.root
	for _, ch := range word {
		child, ok := node.children[ch]
		if !ok {
			return false
		}
		node = child
	}
	return node.terminal
}

// Len returns the number of distinct words inserted.
func (t *Trie) Len() int {
	return t.size
}

// Words enumerates every inserted word in lexicographic order. The order is
// deterministic so that callers scanning for fuzzy-match candidates resolve
// distance ties the same way for a given vocabulary snapshot. Enumeration
// walks the whole trie; callers on a hot path should memoize the result
// until the vocabulary changes.
func (t *Trie) Words() []string {
	words := make([]string, 0, t.size)
	var walk func(node *trieNode, prefix []rune)
	walk = func(node *trieNode, prefix []rune) {
		if node.terminal {
			words = append(words, string(prefix))
		}
		runes := make([]rune, 0, len(node.children))
		for ch := range node.children {
			runes = append(runes, ch)
		}
		sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
		for _, ch := range runes {
			walk(node.children[ch], append(prefix, ch))
		}
	}
	walk(t.root, nil)
	return words
}
