package secsearch

import (
	"reflect"
	"testing"
)

func TestTrieInsertContains(t *testing.T) {
	tr := NewTrie()
	words := []string{"firewall", "fire", "phishing", "zero"}
	for _, w := range words {
		tr.Insert(w)
	}

	for _, w := range words {
		if !tr.Contains(w) {
			t.Errorf("Contains(%q) = false after Insert", w)
		}
	}

	// prefixes of inserted words are not members unless inserted themselves
	for _, w := range []string{"fir", "phish", "z", "firewalls", "xyzzy"} {
		if tr.Contains(w) {
			t.Errorf("Contains(%q) = true; never inserted", w)
		}
	}
}

func TestTrieInsertIdempotent(t *testing.T) {
	tr := NewTrie()
	tr.Insert("malware")
	tr.Insert("malware")
	tr.Insert("malware")
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d after duplicate inserts; want 1", tr.Len())
	}
}

func TestTrieWordsSorted(t *testing.T) {
	tr := NewTrie()
	for _, w := range []string{"worm", "botnet", "virus", "bot", "wormhole"} {
		tr.Insert(w)
	}
	want := []string{"bot", "botnet", "virus", "worm", "wormhole"}
	for i := 0; i < 3; i++ {
		if got := tr.Words(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Words() = %v; want %v", got, want)
		}
	}
}

func TestTrieEmpty(t *testing.T) {
	tr := NewTrie()
	if tr.Contains("") {
		t.Error("empty trie contains empty string")
	}
	if n := len(tr.Words()); n != 0 {
		t.Errorf("empty trie enumerates %d words", n)
	}
}
