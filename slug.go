package logofetch

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of non-alphanumeric
// characters into a single hyphen, and trims leading and trailing
// hyphens. It is deterministic and idempotent.
func Slugify(s string) string {
	s = nonAlnumRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// minTokenRunes is the minimum rune count for a brand word to be used
// as a verification token or domain candidate.
const minTokenRunes = 3

// BrandTokens returns the lowercase words of brand with at least three
// runes, stripped of surrounding punctuation. Used for homepage
// verification and domain candidate generation.
func BrandTokens(brand string) []string {
	var tokens []string
	for _, w := range strings.Fields(strings.ToLower(brand)) {
		w = strings.Trim(w, ".,;:!?\"'()[]{}«»—–-&")
		if w == "" {
			continue
		}
		if utf8.RuneCountInString(w) < minTokenRunes {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
