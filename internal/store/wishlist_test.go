package store

import (
	"context"
	"testing"

	"storefront-proxy/internal/model"
)

func summary(id, name string) model.ProductSummary {
	return model.ProductSummary{ID: id, Name: name, Price: "$10.00"}
}

// Adding the same product twice results in exactly one entry.
func TestWishlistSetSemantics(t *testing.T) {
	ctx := context.Background()
	wl := NewWishlist()

	if added := wl.AddItem(ctx, summary("p1", "Shirt")); !added {
		t.Error("first AddItem should report added")
	}
	if added := wl.AddItem(ctx, summary("p1", "Shirt")); added {
		t.Error("duplicate AddItem should be a no-op")
	}
	if count := wl.ItemCount(); count != 1 {
		t.Errorf("ItemCount() = %d, want 1", count)
	}
}

func TestWishlistContains(t *testing.T) {
	ctx := context.Background()
	wl := NewWishlist()
	wl.AddItem(ctx, summary("p1", "Shirt"))

	if !wl.Contains("p1") {
		t.Error("Contains(p1) = false after add")
	}
	if wl.Contains("p2") {
		t.Error("Contains(p2) = true, never added")
	}

	wl.RemoveItem(ctx, "p1")
	if wl.Contains("p1") {
		t.Error("Contains(p1) = true after remove")
	}
}

func TestWishlistRemoveItem(t *testing.T) {
	ctx := context.Background()
	wl := NewWishlist()
	wl.AddItem(ctx, summary("p1", "Shirt"))
	wl.AddItem(ctx, summary("p2", "Hat"))

	if removed := wl.RemoveItem(ctx, "p1"); !removed {
		t.Error("RemoveItem(p1) should report removed")
	}
	if removed := wl.RemoveItem(ctx, "p1"); removed {
		t.Error("RemoveItem on absent id should be a no-op")
	}

	items := wl.Items()
	if len(items) != 1 || items[0].ID != "p2" {
		t.Errorf("Items() = %+v, want only p2", items)
	}
}

func TestWishlistClear(t *testing.T) {
	ctx := context.Background()
	wl := NewWishlist()
	wl.AddItem(ctx, summary("p1", "Shirt"))
	wl.AddItem(ctx, summary("p2", "Hat"))

	wl.Clear(ctx)
	if count := wl.ItemCount(); count != 0 {
		t.Errorf("ItemCount() after Clear = %d, want 0", count)
	}
}

func TestWishlistSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	wl := NewWishlist()
	wl.AddItem(ctx, summary("p1", "Shirt"))
	wl.AddItem(ctx, summary("p2", "Hat"))

	restored := NewWishlist()
	restored.Restore(wl.Snapshot())

	if restored.ItemCount() != 2 {
		t.Fatalf("restored count = %d, want 2", restored.ItemCount())
	}
	if !restored.Contains("p1") || !restored.Contains("p2") {
		t.Error("restored wishlist missing items")
	}
}
