package secsearch

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "firewall", "firewall", 0},
		{"empty both", "", "", 0},
		{"empty left", "", "vpn", 3},
		{"empty right", "vpn", "", 3},
		{"classic", "kitten", "sitting", 3},
		{"transposition", "fierwall", "firewall", 2},
		{"substitution", "phishing", "phisning", 1},
		{"insertion", "worm", "worms", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EditDistance(tc.a, tc.b); got != tc.want {
				t.Errorf("EditDistance(%q, %q) = %d; want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestEditDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"ransomware", "ransom"},
		{"botnet", "dotnet"},
		{"a", "abc"},
	}
	for _, p := range pairs {
		ab := EditDistance(p[0], p[1])
		ba := EditDistance(p[1], p[0])
		if ab != ba {
			t.Errorf("distance not symmetric for %q/%q: %d vs %d", p[0], p[1], ab, ba)
		}
	}
}

func TestEditDistanceTriangleInequality(t *testing.T) {
	words := []string{"malware", "hardware", "aware", "firmware"}
	for _, a := range words {
		for _, b := range words {
			for _, c := range words {
				if EditDistance(a, c) > EditDistance(a, b)+EditDistance(b, c) {
					t.Errorf("triangle inequality violated for %q, %q, %q", a, b, c)
				}
			}
		}
	}
}
