package secsearch

// minQueryTokenLen is the shortest token a query keeps after filtering.
// Tokens of length 2 or less carry no signal in this corpus.
const minQueryTokenLen = 3

// DefaultStopwords returns the query-time stop-word set as a trie: the usual
// closed-class English words plus "attack"/"attacks", which appear in nearly
// every article of a security corpus. No globals: callers inject the trie.
//
// The filter applies to queries only. Document text is indexed unfiltered so
// any word stays searchable and IDF reflects true corpus statistics.
func DefaultStopwords() *Trie {
	words := []string{
		"what", "is", "a", "an", "the", "how", "does", "do", "are", "can",
		"i", "you", "we", "they", "this", "that", "these", "those",
		"in", "on", "at", "to", "for", "of", "with", "from", "by", "up",
		"about", "into", "through", "during", "including", "against",
		"among", "throughout", "despite", "towards", "upon", "concerning",
		"attack", "attacks",
	}
	t := NewTrie()
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// FilterQuery drops stop words and tokens shorter than minQueryTokenLen,
// preserving order and duplicates of the survivors.
func FilterQuery(tokens []string, stop *Trie) []string {
	var kept []string
	for _, tok := range tokens {
		if len(tok) < minQueryTokenLen {
			continue
		}
		if stop != nil && stop.Contains(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}
