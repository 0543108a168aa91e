package assembly

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTypeID trims, lower-cases and replaces whitespace runs with "-".
func NormalizeTypeID(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// NormalizeCode trims and upper-cases.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeCurrency trims and upper-cases, falling back when empty.
func NormalizeCurrency(s, fallback string) string {
	if c := strings.ToUpper(strings.TrimSpace(s)); c != "" {
		return c
	}
	return fallback
}

// Amount parses a money amount. Anything that is not a finite number is 0.
func Amount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// OptionalInt parses a whole number, truncating any fraction. Input that is
// not a finite number, or falls outside the int range, yields nil.
func OptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	// Fractional and exponent forms share Atoi's range check.
	n, err := strconv.Atoi(strconv.FormatFloat(math.Trunc(f), 'f', 0, 64))
	if err != nil {
		return nil
	}
	return &n
}
