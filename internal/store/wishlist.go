package store

import (
	"context"
	"sync"

	"storefront-proxy/internal/model"
)

// WishlistDocument is the persisted wishlist snapshot.
type WishlistDocument struct {
	Items []model.ProductSummary `json:"items"`
}

// Wishlist is a persisted set of saved products, insertion-ordered.
// Adding an existing product is a no-op; there is no quantity.
type Wishlist struct {
	mu    sync.RWMutex
	items []model.ProductSummary

	saver *saver
}

// NewWishlist creates an empty wishlist with no persistence attached.
func NewWishlist() *Wishlist {
	return &Wishlist{}
}

// AddItem saves the product. Returns false when the product was already
// saved (set semantics, silent no-op).
func (w *Wishlist) AddItem(ctx context.Context, item model.ProductSummary) bool {
	w.mu.Lock()
	defer w.unlockAndSave(ctx)

	for i := range w.items {
		if w.items[i].ID == item.ID {
			return false
		}
	}
	w.items = append(w.items, item)
	return true
}

// RemoveItem drops the product from the wishlist. Returns false when it was
// not saved.
func (w *Wishlist) RemoveItem(ctx context.Context, id string) bool {
	w.mu.Lock()
	defer w.unlockAndSave(ctx)

	for i := range w.items {
		if w.items[i].ID == id {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports wishlist membership.
func (w *Wishlist) Contains(id string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for i := range w.items {
		if w.items[i].ID == id {
			return true
		}
	}
	return false
}

// ItemCount returns the number of saved products.
func (w *Wishlist) ItemCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}

// Items returns a copy of the saved products in insertion order.
func (w *Wishlist) Items() []model.ProductSummary {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.itemsLocked()
}

// Clear empties the wishlist.
func (w *Wishlist) Clear(ctx context.Context) {
	w.mu.Lock()
	defer w.unlockAndSave(ctx)
	w.items = nil
}

// Snapshot returns the persisted document form of the wishlist.
func (w *Wishlist) Snapshot() WishlistDocument {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return WishlistDocument{Items: w.itemsLocked()}
}

// Restore replaces the wishlist state from a persisted document.
func (w *Wishlist) Restore(doc WishlistDocument) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = make([]model.ProductSummary, len(doc.Items))
	copy(w.items, doc.Items)
}

func (w *Wishlist) itemsLocked() []model.ProductSummary {
	out := make([]model.ProductSummary, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) unlockAndSave(ctx context.Context) {
	var doc WishlistDocument
	if w.saver != nil {
		doc = WishlistDocument{Items: w.itemsLocked()}
	}
	w.mu.Unlock()
	if w.saver != nil {
		w.saver.flush(ctx, doc)
	}
}
