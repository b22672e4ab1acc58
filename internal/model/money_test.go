package model

import (
	"testing"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"whole number", "99.00", 9900},
		{"with cents", "123.45", 12345},
		{"zero", "0.00", 0},
		{"empty string", "", 0},
		{"large value", "1234567.89", 123456789},
		{"no decimals", "100", 10000},
		{"one decimal", "99.9", 9990},
		{"small value", "0.01", 1},
		{"invalid string", "abc", 0},
		{"negative (unusual)", "-10.00", -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCents(tt.input)
			if got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"dollar sign", "$19.99", 1999},
		{"euro sign", "€5.00", 500},
		{"pound sign", "£100", 10000},
		{"rupee sign", "₹249.50", 24950},
		{"no symbol", "19.99", 1999},
		{"symbol with space", "$ 19.99", 1999},
		{"leading whitespace", "  $3.00", 300},
		{"empty string", "", 0},
		{"symbol only", "$", 0},
		{"garbage after symbol", "$abc", 0},
		{"negative without symbol", "-10.00", -1000},
		{"bare decimal point start", ".50", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.input)
			if got != tt.want {
				t.Errorf("ParsePrice(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// Only the first symbol is stripped; a second symbol makes the remainder
// unparseable and yields zero rather than a bogus amount.
func TestParsePriceSingleSymbol(t *testing.T) {
	if got := ParsePrice("$$19.99"); got != 0 {
		t.Errorf("ParsePrice(%q) = %d, want 0", "$$19.99", got)
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"whole dollars", 9900, "99.00"},
		{"with cents", 12345, "123.45"},
		{"zero", 0, "0.00"},
		{"single cent", 1, "0.01"},
		{"negative", -1050, "-10.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCents(tt.cents)
			if got != tt.want {
				t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

// Round-trip sanity: formatting then reparsing a display price is stable.
func TestParsePriceFormatRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1999, 123456} {
		display := "$" + FormatCents(cents)
		if got := ParsePrice(display); got != cents {
			t.Errorf("ParsePrice(%q) = %d, want %d", display, got, cents)
		}
	}
}
