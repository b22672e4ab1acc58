// Package handler provides HTTP handlers for the storefront proxy API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"storefront-proxy/internal/backend"
	"storefront-proxy/internal/checkout"
	"storefront-proxy/internal/coupon"
	"storefront-proxy/internal/geo"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/pricing"
	"storefront-proxy/internal/session"
	"storefront-proxy/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	api      backend.API
	sessions *store.Manager
	coupons  *coupon.Resolver
	checkout *checkout.Builder
	calc     pricing.Calculator
	logger   *slog.Logger

	// geo may be nil to disable IP-based currency resolution; /currency
	// then always returns defaultCurrency.
	geo             *geo.Client
	defaultCurrency string
}

// Config wires the handler's collaborators.
type Config struct {
	API             backend.API
	Sessions        *store.Manager
	Coupons         *coupon.Resolver
	Checkout        *checkout.Builder
	Calculator      pricing.Calculator
	Geo             *geo.Client
	DefaultCurrency string
	Logger          *slog.Logger
}

// New creates a new Handler.
func New(cfg Config) *Handler {
	currency := cfg.DefaultCurrency
	if currency == "" {
		currency = geo.DefaultCurrency
	}
	return &Handler{
		api:             cfg.API,
		sessions:        cfg.Sessions,
		coupons:         cfg.Coupons,
		checkout:        cfg.Checkout,
		calc:            cfg.Calculator,
		geo:             cfg.Geo,
		defaultCurrency: currency,
		logger:          cfg.Logger,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Catalog passthrough (no session required)
	mux.HandleFunc("GET /catalog/categories", h.handleCategories)
	mux.HandleFunc("GET /catalog/subcategories", h.handleSubCategories)
	mux.HandleFunc("GET /catalog/products", h.handleProducts)
	mux.HandleFunc("GET /catalog/products/{id}", h.handleProduct)
	mux.HandleFunc("GET /catalog/quantities", h.handleQuantities)
	mux.HandleFunc("GET /catalog/sizes", h.handleSizes)
	mux.HandleFunc("GET /catalog/colors", h.handleColors)

	// Cart
	mux.HandleFunc("GET /cart", h.handleGetCart)
	mux.HandleFunc("POST /cart/items", h.handleAddItem)
	mux.HandleFunc("PUT /cart/items", h.handleReplaceItems)
	mux.HandleFunc("PUT /cart/items/{id}", h.handleUpdateQuantity)
	mux.HandleFunc("DELETE /cart/items/{id}", h.handleRemoveItem)
	mux.HandleFunc("DELETE /cart", h.handleClearCart)
	mux.HandleFunc("GET /cart/totals", h.handleTotals)
	mux.HandleFunc("POST /cart/coupon", h.handleApplyCoupon)
	mux.HandleFunc("DELETE /cart/coupon", h.handleRemoveCoupon)

	// Wishlist
	mux.HandleFunc("GET /wishlist", h.handleGetWishlist)
	mux.HandleFunc("POST /wishlist/items", h.handleWishlistAdd)
	mux.HandleFunc("DELETE /wishlist/items/{id}", h.handleWishlistRemove)
	mux.HandleFunc("DELETE /wishlist", h.handleClearWishlist)

	// Recently viewed
	mux.HandleFunc("GET /recent", h.handleGetRecent)
	mux.HandleFunc("POST /recent", h.handleRecordView)
	mux.HandleFunc("DELETE /recent", h.handleClearRecent)

	// Orders and newsletter
	mux.HandleFunc("POST /orders", h.handlePlaceOrder)
	mux.HandleFunc("POST /newsletter", h.handleNewsletter)

	// Currency resolution (no session required)
	mux.HandleFunc("GET /currency", h.handleCurrency)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// === Response Helpers ===

// envelope is the response wrapper used on every endpoint, matching the
// backend's convention so clients handle one shape end to end.
type envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// writeData sends a success envelope with the given status code.
func (h *Handler) writeData(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := envelope{Success: true, StatusCode: status, Message: message, Data: data}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error envelope, extracting status/message from
// APIError if present. Uses errors.As() to unwrap error chains.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if errors.As(err, &apiErr) {
		// Found APIError in error chain - use it
	} else {
		// Wrap unexpected errors
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	var data any
	if len(apiErr.Details) > 0 {
		data = apiErr.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	resp := envelope{
		Success:    false,
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
		Data:       data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.String("error", err.Error()))
	}
}

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// sessionStores loads the per-session stores for the request. The session
// middleware guarantees a descriptor on session-scoped routes; a missing one
// means the route was wired outside the middleware.
func (h *Handler) sessionStores(r *http.Request) (*store.Session, error) {
	desc := session.FromContext(r.Context())
	if desc == nil {
		return nil, model.NewValidationError(session.Header, "session required")
	}
	return h.sessions.Session(r.Context(), desc.ID)
}

// handleHealth returns a simple health check response.
// GET /health, GET /healthz
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, "ok", healthResponse{Status: "ok"})
}

type healthResponse struct {
	Status string `json:"status"`
}
