package store

import (
	"context"
	"sync"
	"time"

	"storefront-proxy/internal/model"
)

// RecentLimit bounds the recently-viewed history.
const RecentLimit = 10

// RecentEntry is a viewed product stamped with its view time.
type RecentEntry struct {
	Product  model.ProductSummary `json:"product"`
	ViewedAt time.Time            `json:"viewed_at"`
}

// RecentDocument is the persisted recently-viewed snapshot.
type RecentDocument struct {
	Items []RecentEntry `json:"items"`
}

// RecentlyViewed is a bounded, most-recent-first history of viewed
// products. Re-viewing a product moves it to the front rather than
// duplicating it; writes keep the list recency-descending by construction.
type RecentlyViewed struct {
	mu      sync.RWMutex
	entries []RecentEntry

	now   func() time.Time
	saver *saver
}

// NewRecentlyViewed creates an empty history with no persistence attached.
func NewRecentlyViewed() *RecentlyViewed {
	return &RecentlyViewed{now: time.Now}
}

// RecordView removes any existing entry for the product, prepends a fresh
// entry stamped with the current time, and truncates to RecentLimit.
func (r *RecentlyViewed) RecordView(ctx context.Context, product model.ProductSummary) {
	r.mu.Lock()
	defer r.unlockAndSave(ctx)

	for i := range r.entries {
		if r.entries[i].Product.ID == product.ID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}

	entry := RecentEntry{Product: product, ViewedAt: r.now()}
	r.entries = append([]RecentEntry{entry}, r.entries...)

	if len(r.entries) > RecentLimit {
		r.entries = r.entries[:RecentLimit]
	}
}

// Recent returns up to limit entries, most-recent-first. Never returns more
// than the stored bound regardless of limit.
func (r *RecentlyViewed) Recent(limit int) []RecentEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]RecentEntry, limit)
	copy(out, r.entries[:limit])
	return out
}

// Len returns the number of stored entries.
func (r *RecentlyViewed) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear empties the history.
func (r *RecentlyViewed) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.unlockAndSave(ctx)
	r.entries = nil
}

// Snapshot returns the persisted document form of the history.
func (r *RecentlyViewed) Snapshot() RecentDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RecentDocument{Items: r.entriesLocked()}
}

// Restore replaces the history from a persisted document.
func (r *RecentlyViewed) Restore(doc RecentDocument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make([]RecentEntry, len(doc.Items))
	copy(r.entries, doc.Items)
	if len(r.entries) > RecentLimit {
		r.entries = r.entries[:RecentLimit]
	}
}

func (r *RecentlyViewed) entriesLocked() []RecentEntry {
	out := make([]RecentEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *RecentlyViewed) unlockAndSave(ctx context.Context) {
	var doc RecentDocument
	if r.saver != nil {
		doc = RecentDocument{Items: r.entriesLocked()}
	}
	r.mu.Unlock()
	if r.saver != nil {
		r.saver.flush(ctx, doc)
	}
}
