package persist

import (
	"context"
	"testing"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestKey(t *testing.T) {
	got := Key("cart", "sess-1")
	want := "storefront:cart:sess-1"
	if got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var missing testDoc
	found, err := store.Load(ctx, "k", &missing)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("Load() on absent key should return found=false")
	}

	if err := store.Save(ctx, "k", testDoc{Name: "cart", Count: 3}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var loaded testDoc
	found, err = store.Load(ctx, "k", &loaded)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() should find saved document")
	}
	if loaded.Name != "cart" || loaded.Count != 3 {
		t.Errorf("loaded = %+v, want {cart 3}", loaded)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.Save(ctx, "k", testDoc{Count: 1})
	store.Save(ctx, "k", testDoc{Count: 2})

	var loaded testDoc
	store.Load(ctx, "k", &loaded)
	if loaded.Count != 2 {
		t.Errorf("Count = %d, want 2 (last writer wins)", loaded.Count)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.Save(ctx, "k", testDoc{Count: 1})
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var loaded testDoc
	found, _ := store.Load(ctx, "k", &loaded)
	if found {
		t.Error("Load() after Delete() should return found=false")
	}

	// Deleting an absent key is a no-op
	if err := store.Delete(ctx, "never-written"); err != nil {
		t.Errorf("Delete() on absent key error = %v", err)
	}
}

func TestMemoryUnmarshalableDoc(t *testing.T) {
	store := NewMemory()
	if err := store.Save(context.Background(), "k", make(chan int)); err == nil {
		t.Error("Save() with unmarshalable doc should error")
	}
}
