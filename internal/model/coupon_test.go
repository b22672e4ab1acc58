package model

import "testing"

func TestCouponApplicable(t *testing.T) {
	tests := []struct {
		name   string
		coupon Coupon
		want   bool
	}{
		{"active and valid", Coupon{IsActive: true}, true},
		{"expired", Coupon{IsActive: true, IsExpired: true}, false},
		{"deleted", Coupon{IsActive: true, IsDeleted: true}, false},
		{"inactive", Coupon{IsActive: false}, false},
		{"expired and deleted", Coupon{IsActive: true, IsExpired: true, IsDeleted: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coupon.Applicable(); got != tt.want {
				t.Errorf("Applicable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanonicalCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"save10", "SAVE10"},
		{"  Save10  ", "SAVE10"},
		{"SAVE10", "SAVE10"},
		{"", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		if got := CanonicalCode(tt.input); got != tt.want {
			t.Errorf("CanonicalCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
