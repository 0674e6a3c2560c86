package expense

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/chitieu/chitieu/pkg/amount"
	log "github.com/sirupsen/logrus"
)

var ErrItemParse = errors.New("unable to parse item")

// Item is an item-line reduced to what was bought and how much it cost.
type Item struct {
	Description string
	Amount      int64
}

type ItemParser struct {
	fillers [][]string
}

// NewItemParser creates a parser that strips the given leading filler phrases ("hôm nay", "mua")
// from descriptions.
func NewItemParser(fillers []string) *ItemParser {
	parsed := make([][]string, 0, len(fillers))
	for _, filler := range fillers {
		words := strings.Fields(strings.ToLower(amount.Normalize(filler)))
		if len(words) > 0 {
			parsed = append(parsed, words)
		}
	}
	// longest phrases first so "hôm nay" wins over "nay"
	sort.SliceStable(parsed, func(i, j int) bool {
		return len(parsed[i]) > len(parsed[j])
	})
	return &ItemParser{fillers: parsed}
}

// Parse extracts the description and amount of a single item-line. Candidates with a unit are
// tried from the right first, so "cơm 2 suất 35k" costs 35000; a bare trailing number is only used
// when none of them parses. When nothing precedes the amount, the text after it is the
// description ("50k phở").
func (p *ItemParser) Parse(line string) (Item, error) {
	line = amount.Normalize(line)
	for _, c := range byPreference(amount.Candidates(line)) {
		value, err := amount.Parse(c.Text)
		if err != nil {
			log.Debugf("skipping candidate %q in %q: %v", c.Text, line, err)
			continue
		}
		description := trimDescription(line[:c.Start])
		if description == "" {
			description = trimDescription(line[c.End:])
		}
		description = p.stripFillers(description)
		if description == "" {
			return Item{}, fmt.Errorf("%w: no description in %q", ErrItemParse, line)
		}
		return Item{Description: description, Amount: value}, nil
	}
	return Item{}, fmt.Errorf("%w: no amount in %q", ErrItemParse, line)
}

// byPreference orders candidates right to left, those with a unit ahead of bare numbers.
func byPreference(candidates []amount.Candidate) []amount.Candidate {
	ordered := make([]amount.Candidate, 0, len(candidates))
	for _, bare := range []bool{false, true} {
		for i := len(candidates) - 1; i >= 0; i-- {
			if candidates[i].Bare == bare {
				ordered = append(ordered, candidates[i])
			}
		}
	}
	return ordered
}

func (p *ItemParser) stripFillers(description string) string {
	words := strings.Fields(description)
	stripped := false
	for {
		n := p.leadingFiller(words)
		if n == 0 || n == len(words) {
			break
		}
		words = words[n:]
		stripped = true
	}
	if !stripped {
		return description
	}
	return strings.Join(words, " ")
}

// leadingFiller returns how many words at the start of words form a filler phrase.
func (p *ItemParser) leadingFiller(words []string) int {
	for _, filler := range p.fillers {
		if len(filler) > len(words) {
			continue
		}
		matched := true
		for i, w := range filler {
			if strings.ToLower(words[i]) != w {
				matched = false
				break
			}
		}
		if matched {
			return len(filler)
		}
	}
	return 0
}

func trimDescription(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",，;:-–—.!?", r)
	})
}

func DefaultFillerWords() []string {
	return []string{
		"hôm nay", "hom nay", "nay", "vừa", "vua", "mới", "moi", "mua", "chi", "tiêu", "tieu",
	}
}
