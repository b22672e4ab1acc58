// Package store holds the per-session shopping state: cart, wishlist, and
// recently-viewed history. Each store is a mutex-guarded in-memory state
// machine whose full document is persisted after every mutation; derived
// values (item count, subtotal) are recomputed on demand, never cached.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/persist"
)

// CartDocument is the persisted cart snapshot. Transient UI state never
// enters the document; it holds exactly the items and the applied coupon
// code, restored verbatim on load.
type CartDocument struct {
	Items             []model.CartLineItem `json:"items"`
	AppliedCouponCode string               `json:"applied_coupon_code,omitempty"`
}

// Cart is the line-item store for one session. Items are insertion-ordered
// with at most one line per product ID. The applied coupon code is stored
// without validation; whether it yields a discount is the coupon resolver's
// concern.
type Cart struct {
	mu        sync.RWMutex
	items     []model.CartLineItem
	coupon    string
	couponGen uint64

	saver *saver
}

// NewCart creates an empty cart with no persistence attached.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem inserts the item with quantity 1, or increments the existing
// line's quantity by 1 when the product is already in the cart. The notice
// distinguishes the two outcomes for user display. Always succeeds.
func (c *Cart) AddItem(ctx context.Context, item model.CartLineItem) model.CartNotice {
	c.mu.Lock()
	defer c.unlockAndSave(ctx)

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return model.NoticeQuantityUpdated
		}
	}

	item.Quantity = 1
	c.items = append(c.items, item)
	return model.NoticeAdded
}

// RemoveItem deletes the line item if present. Removing an absent item is a
// silent no-op.
func (c *Cart) RemoveItem(ctx context.Context, id string) model.CartNotice {
	c.mu.Lock()
	defer c.unlockAndSave(ctx)
	return c.removeLocked(id)
}

// UpdateQuantity sets the line's quantity to qty exactly. A qty of zero or
// below behaves exactly as RemoveItem, including its notice. Updating an
// absent item is a silent no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, qty int) model.CartNotice {
	c.mu.Lock()
	defer c.unlockAndSave(ctx)

	if qty <= 0 {
		return c.removeLocked(id)
	}

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = qty
			return model.NoticeQuantityUpdated
		}
	}
	return model.NoticeNone
}

// Clear empties the cart unconditionally. The applied coupon code is
// deliberately retained; it is cleared only by SetAppliedCoupon("").
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.unlockAndSave(ctx)
	c.items = nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []model.CartLineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.itemsLocked()
}

// ItemCount is the sum of all line quantities, recomputed on every call.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}

// SubtotalCents sums unit price times quantity over all lines. Pure
// function of state; stable under repeated calls.
func (c *Cart) SubtotalCents() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for i := range c.items {
		total += c.items[i].LineTotalCents()
	}
	return total
}

// AppliedCoupon returns the stored coupon code, or "" when none is applied.
func (c *Cart) AppliedCoupon() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.coupon
}

// SetAppliedCoupon stores or clears the coupon code with no validation at
// this layer. An empty code clears.
func (c *Cart) SetAppliedCoupon(ctx context.Context, code string) {
	c.mu.Lock()
	defer c.unlockAndSave(ctx)
	c.coupon = code
	c.couponGen++
}

// CouponGeneration returns a counter that increments on every applied-coupon
// change. A lookup snapshots it before going to the network so that a result
// arriving for a superseded search can be discarded.
func (c *Cart) CouponGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.couponGen
}

// AutoApplyCoupon applies code only when no coupon is currently applied and
// the applied-coupon state has not changed since gen was observed. Reports
// whether the code was applied.
func (c *Cart) AutoApplyCoupon(ctx context.Context, code string, gen uint64) bool {
	c.mu.Lock()
	if c.coupon != "" || c.couponGen != gen {
		c.mu.Unlock()
		return false
	}
	defer c.unlockAndSave(ctx)
	c.coupon = code
	c.couponGen++
	return true
}

// ItemNotice pairs a product ID with the mutation outcome for that line,
// used by full-replacement updates to report per-item results.
type ItemNotice struct {
	ProductID string           `json:"product_id"`
	Notice    model.CartNotice `json:"notice"`
}

// ReplaceItems applies full-replacement semantics: the desired slice is the
// complete wanted cart state. Current lines are diffed against it and
// mutations applied in remove → update → add order, returning the notice
// for each touched product. Lines whose quantity already matches are left
// untouched and produce no notice.
func (c *Cart) ReplaceItems(ctx context.Context, desired []model.CartLineItem) []ItemNotice {
	c.mu.Lock()
	defer c.unlockAndSave(ctx)

	// Entries with quantity zero or below mean "not in the cart": they are
	// excluded from the wanted set so existing lines fall to the remove pass.
	wanted := make(map[string]model.CartLineItem, len(desired))
	order := make([]string, 0, len(desired))
	for _, item := range desired {
		if item.Quantity <= 0 {
			delete(wanted, item.ID)
			continue
		}
		if _, seen := wanted[item.ID]; !seen {
			order = append(order, item.ID)
		}
		wanted[item.ID] = item
	}

	var notices []ItemNotice

	// Remove lines absent from the desired state.
	kept := c.items[:0]
	for _, item := range c.items {
		if _, ok := wanted[item.ID]; ok {
			kept = append(kept, item)
			continue
		}
		notices = append(notices, ItemNotice{ProductID: item.ID, Notice: model.NoticeRemoved})
	}
	c.items = kept

	// Update quantities that differ.
	present := make(map[string]bool, len(c.items))
	for i := range c.items {
		present[c.items[i].ID] = true
		want := wanted[c.items[i].ID]
		if want.Quantity > 0 && c.items[i].Quantity != want.Quantity {
			c.items[i].Quantity = want.Quantity
			notices = append(notices, ItemNotice{ProductID: c.items[i].ID, Notice: model.NoticeQuantityUpdated})
		}
	}

	// Add new lines in the desired order.
	for _, id := range order {
		if present[id] {
			continue
		}
		item := wanted[id]
		if item.Quantity <= 0 {
			continue
		}
		c.items = append(c.items, item)
		notices = append(notices, ItemNotice{ProductID: id, Notice: model.NoticeAdded})
	}

	return notices
}

// Snapshot returns the persisted document form of the cart.
func (c *Cart) Snapshot() CartDocument {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Restore replaces the cart state from a persisted document.
func (c *Cart) Restore(doc CartDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]model.CartLineItem, len(doc.Items))
	copy(c.items, doc.Items)
	c.coupon = doc.AppliedCouponCode
}

func (c *Cart) removeLocked(id string) model.CartNotice {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return model.NoticeRemoved
		}
	}
	return model.NoticeNone
}

func (c *Cart) itemsLocked() []model.CartLineItem {
	out := make([]model.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) snapshotLocked() CartDocument {
	return CartDocument{
		Items:             c.itemsLocked(),
		AppliedCouponCode: c.coupon,
	}
}

// unlockAndSave snapshots under the still-held lock, releases it, then
// flushes. Used as `c.mu.Lock(); defer c.unlockAndSave(ctx)` in mutations.
func (c *Cart) unlockAndSave(ctx context.Context) {
	var doc CartDocument
	if c.saver != nil {
		doc = c.snapshotLocked()
	}
	c.mu.Unlock()
	if c.saver != nil {
		c.saver.flush(ctx, doc)
	}
}

// saver writes a store's snapshot after each mutation. Persistence is
// best-effort: failures are logged and never surface to the caller.
type saver struct {
	store  persist.Store
	key    string
	logger *slog.Logger
}

func (s *saver) flush(ctx context.Context, doc any) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.store.Save(saveCtx, s.key, doc); err != nil {
		s.logger.Warn("snapshot save failed",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
	}
}
