package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/pricing"
	"storefront-proxy/internal/store"
)

// cartView is the GET /cart payload.
type cartView struct {
	Items             []model.CartLineItem `json:"items"`
	ItemCount         int                  `json:"item_count"`
	Subtotal          int64                `json:"subtotal"`
	SubtotalDisplay   string               `json:"subtotal_display"`
	AppliedCouponCode string               `json:"applied_coupon_code,omitempty"`
}

func newCartView(cart *store.Cart) cartView {
	subtotal := cart.SubtotalCents()
	return cartView{
		Items:             cart.Items(),
		ItemCount:         cart.ItemCount(),
		Subtotal:          subtotal,
		SubtotalDisplay:   model.FormatCents(subtotal),
		AppliedCouponCode: cart.AppliedCoupon(),
	}
}

// cartMutationView reports a mutation outcome alongside fresh cart state.
type cartMutationView struct {
	Notice model.CartNotice `json:"notice"`
	Cart   cartView         `json:"cart"`
}

// handleGetCart returns the session's cart.
// GET /cart
func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "cart", newCartView(sess.Cart))
}

// handleAddItem adds a product to the cart, or bumps its quantity when it
// is already there.
// POST /cart/items
func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var item model.CartLineItem
	if err := decodeJSON(r, &item); err != nil {
		h.writeError(w, err)
		return
	}
	if item.ID == "" {
		h.writeError(w, model.NewValidationError("id", "product id required"))
		return
	}

	notice := sess.Cart.AddItem(r.Context(), item)
	h.logger.InfoContext(r.Context(), "cart item added",
		slog.String("session_id", sess.ID),
		slog.String("product_id", item.ID),
		slog.String("notice", string(notice)))

	h.writeData(w, http.StatusOK, "item added",
		cartMutationView{Notice: notice, Cart: newCartView(sess.Cart)})
}

// replaceItemsRequest is the PUT /cart/items body: the complete desired
// cart state.
type replaceItemsRequest struct {
	Items []model.CartLineItem `json:"items"`
}

// handleReplaceItems applies full-replacement semantics to the cart.
// PUT /cart/items
func (h *Handler) handleReplaceItems(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req replaceItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	for _, item := range req.Items {
		if item.ID == "" {
			h.writeError(w, model.NewValidationError("items", "every item needs a product id"))
			return
		}
	}

	notices := sess.Cart.ReplaceItems(r.Context(), req.Items)

	h.writeData(w, http.StatusOK, "cart replaced", struct {
		Notices []store.ItemNotice `json:"notices"`
		Cart    cartView           `json:"cart"`
	}{Notices: notices, Cart: newCartView(sess.Cart)})
}

// handleUpdateQuantity sets an item's quantity exactly. Zero or negative
// removes the line.
// PUT /cart/items/{id}
func (h *Handler) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	notice := sess.Cart.UpdateQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	h.writeData(w, http.StatusOK, "quantity updated",
		cartMutationView{Notice: notice, Cart: newCartView(sess.Cart)})
}

// handleRemoveItem deletes a line item. Removing an absent item succeeds
// silently.
// DELETE /cart/items/{id}
func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	notice := sess.Cart.RemoveItem(r.Context(), r.PathValue("id"))
	h.writeData(w, http.StatusOK, "item removed",
		cartMutationView{Notice: notice, Cart: newCartView(sess.Cart)})
}

// handleClearCart empties the cart. The applied coupon code stays.
// DELETE /cart
func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	sess.Cart.Clear(r.Context())
	h.writeData(w, http.StatusOK, "cart cleared", newCartView(sess.Cart))
}

// parseTotalsQuery reads the shipping strategy and optional tax amount from
// query parameters.
func parseTotalsQuery(r *http.Request) (pricing.ShippingStrategy, int64, error) {
	strategy := pricing.ShippingStrategy(r.URL.Query().Get("shipping"))
	switch strategy {
	case "", pricing.ShippingFree:
		strategy = pricing.ShippingFree
	case pricing.ShippingFlat:
	default:
		return "", 0, model.NewValidationError("shipping", "must be free or flat")
	}

	var tax int64
	if raw := r.URL.Query().Get("tax"); raw != "" {
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return "", 0, model.NewValidationError("tax", "must be a decimal amount")
		}
		tax = model.ParseCents(raw)
		if tax < 0 {
			return "", 0, model.NewValidationError("tax", "must not be negative")
		}
	}
	return strategy, tax, nil
}

// handleTotals computes the totals breakdown for the session's cart.
// GET /cart/totals?shipping=flat&tax=5.00
//
// A coupon-registry outage degrades to a zero discount rather than failing
// the whole breakdown; order placement re-resolves the discount and does
// fail on outage, so nobody is ever charged a degraded total.
func (h *Handler) handleTotals(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	strategy, tax, err := parseTotalsQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	discount, err := h.coupons.DiscountCents(r.Context(), sess.Cart)
	if err != nil {
		h.logger.WarnContext(r.Context(), "discount lookup failed, using zero",
			slog.String("session_id", sess.ID),
			slog.String("error", err.Error()))
		discount = 0
	}

	breakdown := h.calc.Calculate(sess.Cart.SubtotalCents(), strategy, tax, discount)
	h.writeData(w, http.StatusOK, "totals", breakdown)
}

// couponView reports a coupon resolution outcome.
type couponView struct {
	Coupon            *model.Coupon `json:"coupon,omitempty"`
	Applicable        bool          `json:"applicable"`
	AutoApplied       bool          `json:"auto_applied"`
	AppliedCouponCode string        `json:"applied_coupon_code,omitempty"`
}

// handleApplyCoupon resolves a user-entered code and auto-applies it when
// valid. An unknown or inapplicable code is a normal response, not an
// error; the client shows it inline.
// POST /cart/coupon
func (h *Handler) handleApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res, err := h.coupons.Resolve(r.Context(), sess.Cart, req.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}

	view := couponView{
		Coupon:            res.Coupon,
		Applicable:        res.Applicable,
		AutoApplied:       res.AutoApplied,
		AppliedCouponCode: sess.Cart.AppliedCoupon(),
	}

	message := "coupon applied"
	if !res.Applicable {
		message = "invalid or expired coupon"
	}
	h.writeData(w, http.StatusOK, message, view)
}

// handleRemoveCoupon clears the applied coupon code.
// DELETE /cart/coupon
func (h *Handler) handleRemoveCoupon(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	sess.Cart.SetAppliedCoupon(r.Context(), "")
	h.writeData(w, http.StatusOK, "coupon removed", newCartView(sess.Cart))
}
