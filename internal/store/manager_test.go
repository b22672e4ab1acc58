package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront-proxy/internal/persist"
)

func testManager() (*Manager, *persist.Memory) {
	mem := persist.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(mem, logger), mem
}

func TestManagerSessionIsolation(t *testing.T) {
	ctx := context.Background()
	m, _ := testManager()

	a, err := m.Session(ctx, "sess-a")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	b, err := m.Session(ctx, "sess-b")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}

	a.Cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))

	if b.Cart.ItemCount() != 0 {
		t.Error("sessions must not share cart state")
	}
}

func TestManagerReusesSession(t *testing.T) {
	ctx := context.Background()
	m, _ := testManager()

	first, _ := m.Session(ctx, "sess-a")
	second, _ := m.Session(ctx, "sess-a")
	if first != second {
		t.Error("same session ID should return the same stores")
	}
}

// Mutations persist transparently: a fresh manager over the same snapshot
// store restores the cart, wishlist, and history.
func TestManagerPersistenceAcrossRestart(t *testing.T) {
	ctx := context.Background()
	mem := persist.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	m1 := NewManager(mem, logger)
	s1, _ := m1.Session(ctx, "sess-a")
	s1.Cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	s1.Cart.UpdateQuantity(ctx, "p1", 3)
	s1.Cart.SetAppliedCoupon(ctx, "SAVE10")
	s1.Wishlist.AddItem(ctx, summary("p2", "Hat"))
	s1.Recent.RecordView(ctx, summary("p1", "Shirt"))

	// Simulate process restart
	m2 := NewManager(mem, logger)
	s2, err := m2.Session(ctx, "sess-a")
	if err != nil {
		t.Fatalf("Session() after restart error = %v", err)
	}

	if got := s2.Cart.ItemCount(); got != 3 {
		t.Errorf("restored ItemCount() = %d, want 3", got)
	}
	if got := s2.Cart.AppliedCoupon(); got != "SAVE10" {
		t.Errorf("restored coupon = %q, want %q", got, "SAVE10")
	}
	if !s2.Wishlist.Contains("p2") {
		t.Error("restored wishlist missing p2")
	}
	if s2.Recent.Len() != 1 {
		t.Errorf("restored recent Len() = %d, want 1", s2.Recent.Len())
	}
}

// The three documents are independent: clearing the cart does not disturb
// wishlist or history snapshots.
func TestManagerIndependentDocuments(t *testing.T) {
	ctx := context.Background()
	mem := persist.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	m := NewManager(mem, logger)
	s, _ := m.Session(ctx, "sess-a")
	s.Cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	s.Wishlist.AddItem(ctx, summary("p2", "Hat"))

	s.Cart.Clear(ctx)

	m2 := NewManager(mem, logger)
	s2, _ := m2.Session(ctx, "sess-a")
	if s2.Cart.ItemCount() != 0 {
		t.Error("cart should be empty after Clear")
	}
	if !s2.Wishlist.Contains("p2") {
		t.Error("wishlist should be untouched by cart Clear")
	}
}
