package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront-proxy/internal/checkout"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/pricing"
)

// placeOrderRequest is the POST /orders body: the checkout form plus the
// selected shipping strategy and optional tax amount in major units.
type placeOrderRequest struct {
	checkout.CustomerInfo
	Shipping pricing.ShippingStrategy `json:"shipping,omitempty"`
	Tax      string                   `json:"tax,omitempty"`
}

// handlePlaceOrder submits the session's cart as an order. The totals are
// recomputed server-side; a coupon-registry outage fails the submission
// instead of silently dropping the discount.
// POST /orders
func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	strategy := req.Shipping
	switch strategy {
	case "", pricing.ShippingFree:
		strategy = pricing.ShippingFree
	case pricing.ShippingFlat:
	default:
		h.writeError(w, model.NewValidationError("shipping", "must be free or flat"))
		return
	}

	var tax int64
	if req.Tax != "" {
		if _, err := strconv.ParseFloat(req.Tax, 64); err != nil {
			h.writeError(w, model.NewValidationError("tax", "must be a decimal amount"))
			return
		}
		tax = model.ParseCents(req.Tax)
		if tax < 0 {
			h.writeError(w, model.NewValidationError("tax", "must not be negative"))
			return
		}
	}

	discount, err := h.coupons.DiscountCents(r.Context(), sess.Cart)
	if err != nil {
		h.writeError(w, err)
		return
	}
	totals := h.calc.Calculate(sess.Cart.SubtotalCents(), strategy, tax, discount)

	result, err := h.checkout.PlaceOrder(r.Context(), sess.Cart, req.CustomerInfo, totals)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "order submitted",
		slog.String("session_id", sess.ID),
		slog.String("order_number", result.OrderNumber),
		slog.String("total", totals.TotalDisplay))

	h.writeData(w, http.StatusCreated, "order placed", struct {
		Order  *model.OrderResult `json:"order"`
		Totals pricing.Breakdown  `json:"totals"`
	}{Order: result, Totals: totals})
}

// handleNewsletter forwards a newsletter signup.
// POST /newsletter
func (h *Handler) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"fullName,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.checkout.SubscribeNewsletter(r.Context(), req.Email, req.FullName)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, http.StatusCreated, "subscribed", result)
}
