package handler

import (
	"net"
	"net/http"
	"strings"
)

// currencyResponse is the GET /currency payload.
type currencyResponse struct {
	Currency string `json:"currency"`
}

// handleCurrency resolves the caller's default display currency from their
// IP. Runs before a client has a session; any lookup failure falls back to
// the configured default.
// GET /currency
func (h *Handler) handleCurrency(w http.ResponseWriter, r *http.Request) {
	currency := h.defaultCurrency
	if h.geo != nil {
		currency = h.geo.Currency(r.Context(), clientIP(r))
	}
	h.writeData(w, http.StatusOK, "currency", currencyResponse{Currency: currency})
}

// clientIP extracts the originating address, preferring the first
// X-Forwarded-For hop set by the load balancer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
