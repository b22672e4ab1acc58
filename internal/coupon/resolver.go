// Package coupon resolves user-entered discount codes against the commerce
// backend's coupon registry and derives the cart discount from the applied
// code.
package coupon

import (
	"context"
	"errors"
	"log/slog"

	"storefront-proxy/internal/backend"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/store"
)

// DiscountPercent is the flat discount applied when a resolvable, applicable
// coupon is attached to the cart.
const DiscountPercent = 10

// Resolution is the outcome of one coupon lookup. A nil Coupon means the
// registry has no entry for the code; that is a normal outcome, not an
// error.
type Resolution struct {
	Coupon      *model.Coupon
	Applicable  bool
	AutoApplied bool
}

// Resolver looks up coupons and decides applicability. It holds no
// per-session state; staleness across concurrent lookups is handled through
// the cart's coupon generation counter.
type Resolver struct {
	api    backend.API
	logger *slog.Logger
}

func NewResolver(api backend.API, logger *slog.Logger) *Resolver {
	return &Resolver{api: api, logger: logger}
}

// Resolve looks up code in the registry and, when the coupon is applicable
// and the cart has no coupon applied, applies it to the cart. Auto-apply
// happens at most once per successful lookup: if another request changed
// the applied-coupon state while this lookup was in flight, the result is
// discarded rather than overwriting the newer state.
//
// Not-found and inapplicable codes resolve normally with Applicable false;
// only validation and transport failures return an error.
func (r *Resolver) Resolve(ctx context.Context, cart *store.Cart, code string) (*Resolution, error) {
	canonical := model.CanonicalCode(code)
	if canonical == "" {
		return nil, model.NewValidationError("couponCode", "must not be empty")
	}

	gen := cart.CouponGeneration()

	c, err := r.api.CouponByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &Resolution{}, nil
		}
		return nil, err
	}

	res := &Resolution{Coupon: c, Applicable: c.Applicable()}
	if res.Applicable {
		res.AutoApplied = cart.AutoApplyCoupon(ctx, model.CanonicalCode(c.Code), gen)
	}
	return res, nil
}

// DiscountCents returns the discount for the cart's current state: a flat
// percentage of the subtotal when the applied code resolves as applicable,
// zero otherwise. An applied code that no longer resolves (expired, deleted,
// deactivated, or gone from the registry) yields zero without being cleared;
// the code stays on the cart until the shopper replaces or removes it.
func (r *Resolver) DiscountCents(ctx context.Context, cart *store.Cart) (int64, error) {
	code := cart.AppliedCoupon()
	if code == "" {
		return 0, nil
	}

	c, err := r.api.CouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if !c.Applicable() {
		return 0, nil
	}

	return cart.SubtotalCents() * DiscountPercent / 100, nil
}
