package textutils

import (
	"strings"
	"unicode"

	"github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold removes diacritics and upper-cases s, so "Condomínio" and
// "CONDOMINIO" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(folded)
}

// KeywordSet is an immutable, folded dictionary matched with Aho-Corasick.
// It is safe for concurrent use.
type KeywordSet struct {
	words   []string
	matcher *ahocorasick.Matcher
}

// NewKeywordSet folds and indexes words. Blank entries are ignored.
func NewKeywordSet(words ...string) *KeywordSet {
	folded := make([]string, 0, len(words))
	for _, w := range words {
		if w = Fold(strings.TrimSpace(w)); w != "" {
			folded = append(folded, w)
		}
	}
	return &KeywordSet{
		words:   folded,
		matcher: ahocorasick.NewStringMatcher(folded),
	}
}

// Contains reports whether the folded text contains any keyword.
func (k *KeywordSet) Contains(text string) bool {
	if k == nil || len(k.words) == 0 {
		return false
	}
	return len(k.matcher.MatchThreadSafe([]byte(Fold(text)))) > 0
}

// Matches returns the keywords found in text, in dictionary order.
func (k *KeywordSet) Matches(text string) []string {
	if k == nil || len(k.words) == 0 {
		return nil
	}
	hits := k.matcher.MatchThreadSafe([]byte(Fold(text)))
	seen := make([]bool, len(k.words))
	for _, i := range hits {
		seen[i] = true
	}
	var out []string
	for i, ok := range seen {
		if ok {
			out = append(out, k.words[i])
		}
	}
	return out
}

// Words returns the folded keywords.
func (k *KeywordSet) Words() []string {
	return append([]string(nil), k.words...)
}
