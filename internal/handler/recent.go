package handler

import (
	"net/http"
	"strconv"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/store"
)

// handleGetRecent returns the most recently viewed products, newest first.
// GET /recent?limit=5
func (h *Handler) handleGetRecent(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	limit := store.RecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, model.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	h.writeData(w, http.StatusOK, "recently viewed", sess.Recent.Recent(limit))
}

// handleRecordView records a product view, moving a re-viewed product to
// the front of the history.
// POST /recent
func (h *Handler) handleRecordView(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var product model.ProductSummary
	if err := decodeJSON(r, &product); err != nil {
		h.writeError(w, err)
		return
	}
	if product.ID == "" {
		h.writeError(w, model.NewValidationError("id", "product id required"))
		return
	}

	sess.Recent.RecordView(r.Context(), product)
	h.writeData(w, http.StatusOK, "view recorded", sess.Recent.Recent(store.RecentLimit))
}

// handleClearRecent wipes the viewing history.
// DELETE /recent
func (h *Handler) handleClearRecent(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	sess.Recent.Clear(r.Context())
	h.writeData(w, http.StatusOK, "history cleared", []store.RecentEntry{})
}
