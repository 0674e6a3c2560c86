package expense

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chitieu/chitieu/pkg/amount"
)

// Split breaks a free-form message into item-lines. Every line of the message is a candidate item;
// a line is split further on commas or semicolons only when each resulting segment carries its own
// amount. Lines without any amount are dropped.
func Split(message string) []string {
	var items []string
	for _, line := range strings.FieldsFunc(message, isLineBreak) {
		line = amount.Normalize(line)
		if line == "" || !amount.Contains(line) {
			continue
		}
		segments := splitSegments(line)
		if len(segments) > 1 && allContainAmounts(segments) {
			items = append(items, segments...)
			continue
		}
		items = append(items, line)
	}
	return items
}

func splitSegments(line string) []string {
	var segments []string
	start := 0
	for i, r := range line {
		if !isItemSeparator(r) {
			continue
		}
		if r == ',' && betweenDigits(line, i) {
			continue
		}
		if segment := strings.TrimSpace(line[start:i]); segment != "" {
			segments = append(segments, segment)
		}
		start = i + utf8.RuneLen(r)
	}
	if segment := strings.TrimSpace(line[start:]); segment != "" {
		segments = append(segments, segment)
	}
	return segments
}

func allContainAmounts(segments []string) bool {
	for _, segment := range segments {
		if !amount.Contains(segment) {
			return false
		}
	}
	return true
}

// betweenDigits reports whether the separator at byte i sits inside a number ("1,5tr", "50,000").
func betweenDigits(s string, i int) bool {
	before, _ := utf8.DecodeLastRuneInString(s[:i])
	after, _ := utf8.DecodeRuneInString(s[i+1:])
	return unicode.IsDigit(before) && unicode.IsDigit(after)
}

func isItemSeparator(r rune) bool {
	return r == ',' || r == '，' || r == ';'
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}
