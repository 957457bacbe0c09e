package secsearch

import (
	"regexp"
	"strings"
)

// wordRe matches maximal runs of ASCII letters. Digits, punctuation and
// symbols act purely as separators and are discarded.
var wordRe = regexp.MustCompile(`[a-z]+`)

// Tokenize lowercases text and splits it into alphabetic tokens,
// preserving document order. Empty input yields no tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return wordRe.FindAllString(strings.ToLower(text), -1)
}
