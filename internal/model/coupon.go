package model

import (
	"strings"
	"time"
)

// Coupon is a discount coupon as returned by the remote registry.
// Validity flags are determined by the backend, not computed locally;
// the proxy only combines them into the Applicable predicate.
type Coupon struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Expiry    time.Time `json:"expiry"`
	IsActive  bool      `json:"isActive"`
	IsExpired bool      `json:"isExpired"`
	IsDeleted bool      `json:"isDeleted"`
}

// Applicable reports whether the coupon may produce a discount.
func (c Coupon) Applicable() bool {
	return c.IsActive && !c.IsExpired && !c.IsDeleted
}

// CanonicalCode normalizes a user-entered coupon code to its uppercase,
// trimmed lookup key. Codes match case-insensitively.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
