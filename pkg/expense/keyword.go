package expense

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// keyword is one configured phrase. A phrase ending in "*" is a stem: its last word matches
// any word that starts with it.
type keyword struct {
	raw   string
	words []string
	stem  bool
}

type keywordMatcher struct {
	keywords []keyword
}

func newKeywordMatcher(phrases []string) keywordMatcher {
	keywords := make([]keyword, 0, len(phrases))
	for _, phrase := range phrases {
		stem := strings.HasSuffix(strings.TrimSpace(phrase), "*")
		words := tokenize(strings.TrimSuffix(strings.TrimSpace(phrase), "*"))
		if len(words) == 0 {
			continue
		}
		keywords = append(keywords, keyword{raw: phrase, words: words, stem: stem})
	}
	return keywordMatcher{keywords: keywords}
}

// match returns the first keyword found in the tokenized text.
func (m keywordMatcher) match(words []string) (string, bool) {
	for _, kw := range m.keywords {
		if kw.foundIn(words) {
			return kw.raw, true
		}
	}
	return "", false
}

func (kw keyword) foundIn(words []string) bool {
	n := len(kw.words)
	for i := 0; i+n <= len(words); i++ {
		if kw.matchesAt(words[i : i+n]) {
			return true
		}
	}
	return false
}

func (kw keyword) matchesAt(window []string) bool {
	last := len(kw.words) - 1
	for j, w := range kw.words {
		if j == last && kw.stem {
			if !strings.HasPrefix(window[j], w) {
				return false
			}
			continue
		}
		if window[j] != w {
			return false
		}
	}
	return true
}

// tokenize lower-cases text in NFC form and splits it into words.
func tokenize(text string) []string {
	lower := strings.ToLower(norm.NFC.String(text))
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r)
	})
}
