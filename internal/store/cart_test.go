package store

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"storefront-proxy/internal/model"
)

func lineItem(id, name, price string) model.CartLineItem {
	return model.CartLineItem{ID: id, Name: name, UnitPrice: price}
}

func TestCartAddItem(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()

	if notice := cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99")); notice != model.NoticeAdded {
		t.Errorf("first AddItem notice = %q, want %q", notice, model.NoticeAdded)
	}
	if notice := cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99")); notice != model.NoticeQuantityUpdated {
		t.Errorf("second AddItem notice = %q, want %q", notice, model.NoticeQuantityUpdated)
	}

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1 (no duplicate lines per product)", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", items[0].Quantity)
	}
}

// AddItem on an existing ID increases that line by exactly 1 and leaves
// every other line unchanged.
func TestCartAddItemLeavesOthersUnchanged(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	cart.AddItem(ctx, lineItem("p2", "Hat", "$9.99"))
	cart.UpdateQuantity(ctx, "p2", 5)

	before := cart.Items()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	after := cart.Items()

	if after[0].Quantity != before[0].Quantity+1 {
		t.Errorf("p1 quantity = %d, want %d", after[0].Quantity, before[0].Quantity+1)
	}
	if !reflect.DeepEqual(after[1], before[1]) {
		t.Errorf("p2 changed: %+v -> %+v", before[1], after[1])
	}
}

// AddItem forces quantity 1 on insert regardless of the incoming value.
func TestCartAddItemQuantityReset(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()

	item := lineItem("p1", "Shirt", "$19.99")
	item.Quantity = 7
	cart.AddItem(ctx, item)

	if got := cart.Items()[0].Quantity; got != 1 {
		t.Errorf("Quantity = %d, want 1", got)
	}
}

func TestCartRemoveItem(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))

	if notice := cart.RemoveItem(ctx, "p1"); notice != model.NoticeRemoved {
		t.Errorf("RemoveItem notice = %q, want %q", notice, model.NoticeRemoved)
	}
	if notice := cart.RemoveItem(ctx, "p1"); notice != model.NoticeNone {
		t.Errorf("RemoveItem on absent id notice = %q, want silent no-op", notice)
	}
	if count := cart.ItemCount(); count != 0 {
		t.Errorf("ItemCount() = %d, want 0", count)
	}
}

// updateQuantity(id, qty<=0) produces exactly the same end state and notice
// as removeItem(id).
func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	tests := []struct {
		name string
		qty  int
	}{
		{"zero", 0},
		{"negative", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cart := NewCart()
			cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))

			if notice := cart.UpdateQuantity(ctx, "p1", tt.qty); notice != model.NoticeRemoved {
				t.Errorf("UpdateQuantity notice = %q, want %q", notice, model.NoticeRemoved)
			}
			if len(cart.Items()) != 0 {
				t.Error("item should be removed")
			}
		})
	}
}

func TestCartUpdateQuantitySetsExactly(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))

	cart.UpdateQuantity(ctx, "p1", 7)
	if got := cart.Items()[0].Quantity; got != 7 {
		t.Errorf("Quantity = %d, want 7 (set exactly, not additive)", got)
	}

	if notice := cart.UpdateQuantity(ctx, "missing", 3); notice != model.NoticeNone {
		t.Errorf("UpdateQuantity on absent id notice = %q, want silent no-op", notice)
	}
}

func TestCartItemCount(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	cart.AddItem(ctx, lineItem("p2", "Hat", "$9.99"))

	if got := cart.ItemCount(); got != 3 {
		t.Errorf("ItemCount() = %d, want 3", got)
	}
}

func TestCartSubtotal(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	cart.UpdateQuantity(ctx, "p1", 2)
	cart.AddItem(ctx, lineItem("p2", "Hat", "$10.00"))

	want := int64(2*1999 + 1000)
	if got := cart.SubtotalCents(); got != want {
		t.Errorf("SubtotalCents() = %d, want %d", got, want)
	}
}

// Subtotal is a pure function of state: repeated calls with no mutation in
// between return the same value.
func TestCartSubtotalIdempotent(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	cart.AddItem(ctx, lineItem("p2", "Hat", "$9.99"))

	first := cart.SubtotalCents()
	for i := 0; i < 10; i++ {
		if got := cart.SubtotalCents(); got != first {
			t.Fatalf("call %d: SubtotalCents() = %d, want %d", i, got, first)
		}
	}
}

func TestCartClearRetainsCoupon(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	cart.SetAppliedCoupon(ctx, "SAVE10")

	cart.Clear(ctx)

	if len(cart.Items()) != 0 {
		t.Error("Clear() should empty items")
	}
	if got := cart.AppliedCoupon(); got != "SAVE10" {
		t.Errorf("AppliedCoupon() = %q, want %q (coupon survives Clear)", got, "SAVE10")
	}

	cart.SetAppliedCoupon(ctx, "")
	if got := cart.AppliedCoupon(); got != "" {
		t.Errorf("AppliedCoupon() = %q, want cleared", got)
	}
}

func TestCartReplaceItems(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	cart.AddItem(ctx, lineItem("p2", "Hat", "$9.99"))
	cart.UpdateQuantity(ctx, "p2", 2)

	p3 := lineItem("p3", "Socks", "$4.99")
	p3.Quantity = 3
	p2 := lineItem("p2", "Hat", "$9.99")
	p2.Quantity = 5

	notices := cart.ReplaceItems(ctx, []model.CartLineItem{p2, p3})

	got := map[string]model.CartNotice{}
	for _, n := range notices {
		got[n.ProductID] = n.Notice
	}
	if got["p1"] != model.NoticeRemoved {
		t.Errorf("p1 notice = %q, want %q", got["p1"], model.NoticeRemoved)
	}
	if got["p2"] != model.NoticeQuantityUpdated {
		t.Errorf("p2 notice = %q, want %q", got["p2"], model.NoticeQuantityUpdated)
	}
	if got["p3"] != model.NoticeAdded {
		t.Errorf("p3 notice = %q, want %q", got["p3"], model.NoticeAdded)
	}

	items := cart.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "p2" || items[0].Quantity != 5 {
		t.Errorf("items[0] = %+v, want p2 qty 5", items[0])
	}
	if items[1].ID != "p3" || items[1].Quantity != 3 {
		t.Errorf("items[1] = %+v, want p3 qty 3", items[1])
	}
}

// A desired entry with quantity zero removes the matching line, so the same
// payload converges to the same end state regardless of prior cart contents.
func TestCartReplaceItemsZeroQuantityRemoves(t *testing.T) {
	ctx := context.Background()

	p1 := lineItem("p1", "Shirt", "$19.99")
	p1.Quantity = 0
	desired := []model.CartLineItem{p1}

	populated := NewCart()
	populated.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))
	populated.UpdateQuantity(ctx, "p1", 2)

	notices := populated.ReplaceItems(ctx, desired)
	if len(notices) != 1 || notices[0].ProductID != "p1" || notices[0].Notice != model.NoticeRemoved {
		t.Errorf("notices = %+v, want single p1 removed", notices)
	}
	if n := len(populated.Items()); n != 0 {
		t.Errorf("populated cart has %d items after replace, want 0", n)
	}

	fresh := NewCart()
	if notices := fresh.ReplaceItems(ctx, desired); len(notices) != 0 {
		t.Errorf("fresh cart notices = %+v, want none", notices)
	}
	if n := len(fresh.Items()); n != 0 {
		t.Errorf("fresh cart has %d items after replace, want 0", n)
	}
}

func TestCartReplaceItemsNoChanges(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	cart.AddItem(ctx, lineItem("p1", "Shirt", "$19.99"))

	desired := cart.Items()
	if notices := cart.ReplaceItems(ctx, desired); len(notices) != 0 {
		t.Errorf("ReplaceItems with identical state produced notices: %v", notices)
	}
}

// Serializing a cart document and restoring it reproduces the items and the
// applied coupon code exactly.
func TestCartSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	cart := NewCart()
	item := lineItem("p1", "Shirt", "$19.99")
	item.SelectedColor = "Navy"
	item.SelectedSize = "M"
	item.ColorID = 4
	cart.AddItem(ctx, item)
	cart.AddItem(ctx, lineItem("p2", "Hat", "$9.99"))
	cart.UpdateQuantity(ctx, "p1", 3)
	cart.SetAppliedCoupon(ctx, "SAVE10")

	data, err := json.Marshal(cart.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc CartDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := NewCart()
	restored.Restore(doc)

	if !reflect.DeepEqual(restored.Items(), cart.Items()) {
		t.Errorf("restored items = %+v, want %+v", restored.Items(), cart.Items())
	}
	if restored.AppliedCoupon() != "SAVE10" {
		t.Errorf("restored coupon = %q, want %q", restored.AppliedCoupon(), "SAVE10")
	}
	if restored.SubtotalCents() != cart.SubtotalCents() {
		t.Errorf("restored subtotal = %d, want %d", restored.SubtotalCents(), cart.SubtotalCents())
	}
}
