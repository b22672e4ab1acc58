package handler

import "net/http"

// Catalog endpoints proxy the commerce backend one to one. The proxy adds
// the Chrome-fingerprint transport, auth, and envelope decoding; payloads
// pass through unchanged.

// handleCategories lists product categories.
// GET /catalog/categories
func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.api.Categories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "categories", categories)
}

// handleSubCategories lists product subcategories.
// GET /catalog/subcategories
func (h *Handler) handleSubCategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.api.SubCategories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "subcategories", subs)
}

// handleProducts lists the full product catalog.
// GET /catalog/products
func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.Products(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "products", products)
}

// handleProduct returns a single product.
// GET /catalog/products/{id}
func (h *Handler) handleProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.api.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "product", product)
}

// handleQuantities lists quantity-pack variants.
// GET /catalog/quantities
func (h *Handler) handleQuantities(w http.ResponseWriter, r *http.Request) {
	quantities, err := h.api.Quantities(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "quantities", quantities)
}

// handleSizes lists size variants.
// GET /catalog/sizes
func (h *Handler) handleSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.api.Sizes(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "sizes", sizes)
}

// handleColors lists color variants.
// GET /catalog/colors
func (h *Handler) handleColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.api.Colors(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, "colors", colors)
}
