package handler

import (
	"log/slog"
	"net/http"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/store"
)

// wishlistView is the GET /wishlist payload.
type wishlistView struct {
	Items     []model.ProductSummary `json:"items"`
	ItemCount int                    `json:"item_count"`
}

func newWishlistView(wl *store.Wishlist) wishlistView {
	return wishlistView{Items: wl.Items(), ItemCount: wl.ItemCount()}
}

// handleGetWishlist returns the session's wishlist.
// GET /wishlist
func (h *Handler) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "wishlist", newWishlistView(sess.Wishlist))
}

// handleWishlistAdd saves a product. Adding an already-saved product is a
// no-op; the response reports which happened.
// POST /wishlist/items
func (h *Handler) handleWishlistAdd(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var item model.ProductSummary
	if err := decodeJSON(r, &item); err != nil {
		h.writeError(w, err)
		return
	}
	if item.ID == "" {
		h.writeError(w, model.NewValidationError("id", "product id required"))
		return
	}

	added := sess.Wishlist.AddItem(r.Context(), item)
	h.logger.InfoContext(r.Context(), "wishlist add",
		slog.String("session_id", sess.ID),
		slog.String("product_id", item.ID),
		slog.Bool("added", added))

	message := "item saved"
	if !added {
		message = "item already saved"
	}
	h.writeData(w, http.StatusOK, message, struct {
		Added    bool         `json:"added"`
		Wishlist wishlistView `json:"wishlist"`
	}{Added: added, Wishlist: newWishlistView(sess.Wishlist)})
}

// handleWishlistRemove unsaves a product.
// DELETE /wishlist/items/{id}
func (h *Handler) handleWishlistRemove(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	removed := sess.Wishlist.RemoveItem(r.Context(), r.PathValue("id"))
	h.writeData(w, http.StatusOK, "item removed", struct {
		Removed  bool         `json:"removed"`
		Wishlist wishlistView `json:"wishlist"`
	}{Removed: removed, Wishlist: newWishlistView(sess.Wishlist)})
}

// handleClearWishlist removes every saved product.
// DELETE /wishlist
func (h *Handler) handleClearWishlist(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionStores(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	sess.Wishlist.Clear(r.Context())
	h.writeData(w, http.StatusOK, "wishlist cleared", newWishlistView(sess.Wishlist))
}
