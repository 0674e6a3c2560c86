package amount

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

var ErrAmountParse = errors.New("no valid amount")

// MaxAmount is the largest amount a single item may carry: one trillion đồng.
const MaxAmount int64 = 1_000_000_000_000

// minBareDigits is how many digits a number without a unit needs to count as money.
const minBareDigits = 4

// units maps a lower-cased suffix to its multiplier in đồng.
var units = map[string]int64{
	"":      1,
	"d":     1,
	"đ":     1,
	"vnd":   1,
	"vnđ":   1,
	"dong":  1,
	"đồng":  1,
	"k":     1_000,
	"ng":    1_000,
	"ngan":  1_000,
	"ngàn":  1_000,
	"nghin": 1_000,
	"nghìn": 1_000,
	"tr":    1_000_000,
	"trieu": 1_000_000,
	"triệu": 1_000_000,
}

var (
	// sign, number, gap, unit
	reToken    = regexp.MustCompile(`(-?)(\d+(?:[.,]\d+)*)(?:(\s*)(\p{L}+))?`)
	reFragment = regexp.MustCompile(`^(-?)(\d+(?:[.,]\d+)*)\s*(\p{L}*)$`)
	reGrouped  = regexp.MustCompile(`^\d{1,3}(?:([.,])\d{3})+$`)
)

// Candidate is an amount-bearing token found inside an item-line.
// Start and End are byte offsets into the line that was scanned.
type Candidate struct {
	Start int
	End   int
	Text  string
	Bare  bool
}

// Normalize returns s in Unicode NFC form with surrounding whitespace removed.
// Offsets returned by Candidates are only meaningful for normalized input.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Parse converts a single money-like fragment ("35k", "1.5tr", "50000đ", "30 nghìn") into an
// integer amount of đồng.
func Parse(fragment string) (int64, error) {
	text := strings.TrimRightFunc(Normalize(fragment), isTrailingPunct)
	m := reFragment.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrAmountParse, fragment)
	}
	if m[1] == "-" {
		return 0, fmt.Errorf("%w: negative amount %q", ErrAmountParse, fragment)
	}
	multiplier, ok := units[strings.ToLower(m[3])]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrAmountParse, m[3])
	}
	number, err := parseNumber(m[2], multiplier)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAmountParse, err)
	}
	total := number.Mul(decimal.NewFromInt(multiplier))
	if total.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return 0, fmt.Errorf("%w: amount %q exceeds %d", ErrAmountParse, fragment, MaxAmount)
	}
	value := total.IntPart()
	if value <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive, got %q", ErrAmountParse, fragment)
	}
	return value, nil
}

// Candidates returns the amount tokens of line from left to right. A number without a unit is
// only reported when it is the trailing token of the line and has at least four digits, so counts
// ("2 suất", "phở 50k 2") are never mistaken for money.
func Candidates(line string) []Candidate {
	var candidates []Candidate
	for _, m := range reToken.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[0], m[1]
		signStart := m[2]
		numEnd := m[5]
		if m[3] > m[2] && signStart > 0 && !isSpaceBefore(line, signStart) {
			// a hyphen glued to a word is not a sign
			start = m[4]
		}
		if start > 0 && isWordBefore(line, start) {
			continue
		}

		bare := m[8] < 0
		if !bare {
			// "5kg", "2 suất" are quantities, not money
			if _, ok := units[strings.ToLower(line[m[8]:m[9]])]; !ok {
				continue
			}
		} else {
			end = numEnd
			if strings.TrimFunc(line[end:], isTrailingNoise) != "" {
				continue
			}
			if countDigits(line[m[4]:numEnd]) < minBareDigits {
				continue
			}
		}
		candidates = append(candidates, Candidate{
			Start: start,
			End:   end,
			Text:  line[start:end],
			Bare:  bare,
		})
	}
	return candidates
}

// Contains reports whether line has at least one amount candidate.
func Contains(line string) bool {
	return len(Candidates(Normalize(line))) > 0
}

func parseNumber(num string, multiplier int64) (decimal.Decimal, error) {
	separators := strings.Count(num, ".") + strings.Count(num, ",")
	switch {
	case separators == 0:
		return decimal.NewFromString(num)
	case isGrouped(num) && (multiplier == 1 || separators > 1):
		digits := strings.NewReplacer(".", "", ",", "").Replace(num)
		return decimal.NewFromString(digits)
	case separators == 1:
		return decimal.NewFromString(strings.Replace(num, ",", ".", 1))
	default:
		return decimal.Decimal{}, fmt.Errorf("malformed number %q", num)
	}
}

// isGrouped reports whether num uses one consistent thousands separator ("1.500.000").
func isGrouped(num string) bool {
	m := reGrouped.FindStringSubmatch(num)
	if m == nil {
		return false
	}
	other := ","
	if m[1] == "," {
		other = "."
	}
	return !strings.Contains(num, other)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func isWordBefore(s string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpaceBefore(s string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsSpace(r)
}

func isTrailingPunct(r rune) bool {
	return strings.ContainsRune(".!?;:", r)
}

func isTrailingNoise(r rune) bool {
	return unicode.IsSpace(r) || isTrailingPunct(r)
}
