package secsearch

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"lowercasing", "SQL Injection", []string{"sql", "injection"}},
		{"digits split words", "log4j exploit", []string{"log", "j", "exploit"}},
		{"punctuation separates", "don't click; verify!", []string{"don", "t", "click", "verify"}},
		{"symbols only", "123 --- 456", nil},
		{"order preserved", "b a c a", []string{"b", "a", "c", "a"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tokenize(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %v; want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFilterQuery(t *testing.T) {
	stop := DefaultStopwords()

	got := FilterQuery(Tokenize("what is a firewall"), stop)
	if !reflect.DeepEqual(got, []string{"firewall"}) {
		t.Errorf("filtered query = %v; want [firewall]", got)
	}

	// "attack" is domain noise and filtered like a closed-class word
	got = FilterQuery(Tokenize("ddos attack on dns"), stop)
	if !reflect.DeepEqual(got, []string{"ddos", "dns"}) {
		t.Errorf("filtered query = %v; want [ddos dns]", got)
	}

	// short tokens go even when they are not stop words
	if got := FilterQuery(Tokenize("an ip of it"), stop); got != nil {
		t.Errorf("filtered query = %v; want none", got)
	}
}
