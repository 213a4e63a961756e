package flows

import (
	"regexp"
	"strconv"
	"strings"
)

// Phone-like: at least 10 characters of digits with optional separators
// and a leading plus. Card-like: a digit followed by 13 or more digits and
// separators.
var (
	accountPattern = regexp.MustCompile(`^(?:\+?[\d\s\-()]{10,}|\d[\d\s\-]{13,})$`)
	separators     = regexp.MustCompile(`[\s\-()]+`)
)

// ParseAmount parses a user-entered amount. Comma is accepted as the
// decimal separator.
func ParseAmount(raw string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeAccount validates an account number shaped like a phone or card
// number and returns it with separators stripped. At least 10 digits must
// remain after stripping.
func NormalizeAccount(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !accountPattern.MatchString(trimmed) {
		return "", false
	}
	cleaned := separators.ReplaceAllString(trimmed, "")
	if len(strings.TrimPrefix(cleaned, "+")) < 10 {
		return "", false
	}
	return cleaned, true
}
