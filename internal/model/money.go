package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseCents converts decimal string amounts (major units) to cents (int64).
// Use for values that carry no currency symbol (e.g., "99.00" = $99.00).
// Handles edge cases: empty strings, missing decimals, large values.
// Examples: "99.00" → 9900, "1234.56" → 123456, "" → 0
func ParseCents(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	// math.Round handles both positive and negative numbers correctly
	return int64(math.Round(f * 100))
}

// ParsePrice converts a currency-formatted display price to cents.
// Strips at most one leading currency symbol before parsing the remainder
// as a decimal amount. Unit prices are captured as display strings at
// add-to-cart time (e.g., "$19.99", "€5.00"), so this is the one place the
// symbol is peeled off.
// Examples: "$19.99" → 1999, "€5.00" → 500, "19.99" → 1999, "" → 0
func ParsePrice(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s)
	if r != utf8.RuneError && !startsAmount(r) {
		s = strings.TrimSpace(s[size:])
	}
	return ParseCents(s)
}

// startsAmount reports whether r can begin a plain decimal amount.
func startsAmount(r rune) bool {
	return (r >= '0' && r <= '9') || r == '-' || r == '+' || r == '.'
}

// FormatCents renders cents as a major-unit decimal string ("1999" → "19.99").
// Used for display text in totals breakdowns and the CLI client.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
