package seed

import (
	"bytes"
	"context"
	"testing"

	"lotoria/db"
	"lotoria/store"

	"go.mongodb.org/mongo-driver/bson"
)

func collectAll(t *testing.T, adapter store.Adapter) map[string][]bson.Raw {
	t.Helper()
	out := make(map[string][]bson.Raw)
	for _, name := range db.All {
		docs, err := adapter.ListOnce(context.Background(), name)
		if err != nil {
			t.Fatal(err)
		}
		out[name] = docs
	}
	return out
}

func TestEnsureDefaultsSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	EnsureDefaults(ctx, mem)

	if docs, _ := mem.ListOnce(ctx, db.ColConfig); len(docs) != 1 {
		t.Fatalf("expected 1 config doc, got %d", len(docs))
	}
	if docs, _ := mem.ListOnce(ctx, db.ColServices); len(docs) != 2 {
		t.Fatalf("expected 2 seeded services, got %d", len(docs))
	}
	if docs, _ := mem.ListOnce(ctx, db.ColProducts); len(docs) != 1 {
		t.Fatalf("expected 1 seeded product, got %d", len(docs))
	}

	users, _ := mem.ListOnce(ctx, db.ColUsers)
	if len(users) != 1 {
		t.Fatalf("expected 1 seeded user, got %d", len(users))
	}
	var admin bson.M
	if err := bson.Unmarshal(users[0], &admin); err != nil {
		t.Fatal(err)
	}
	if admin["role"] != "ADMIN" {
		t.Errorf("seeded user role = %v, want ADMIN", admin["role"])
	}
	if admin["mobile"] != AdminMobile() {
		t.Errorf("seeded admin mobile = %v, want %v", admin["mobile"], AdminMobile())
	}
	if pw, _ := admin["password"].(string); pw == "Jyoti05" || pw == "" {
		t.Error("admin password must be stored hashed, not plain or empty")
	}
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	EnsureDefaults(ctx, mem)
	before := collectAll(t, mem)

	EnsureDefaults(ctx, mem)
	after := collectAll(t, mem)

	for _, name := range db.All {
		if len(before[name]) != len(after[name]) {
			t.Fatalf("%s: doc count changed from %d to %d on re-seed", name, len(before[name]), len(after[name]))
		}
		for i := range before[name] {
			if !bytes.Equal(before[name][i], after[name][i]) {
				t.Errorf("%s[%d]: document altered by re-seed", name, i)
			}
		}
	}
}

func TestEnsureDefaultsLeavesPopulatedStoreAlone(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	custom := DefaultConfig()
	custom.SalonName = "Someone Else's Salon"
	if err := mem.Upsert(ctx, db.ColConfig, custom.ID, custom); err != nil {
		t.Fatal(err)
	}

	EnsureDefaults(ctx, mem)

	if docs, _ := mem.ListOnce(ctx, db.ColServices); len(docs) != 0 {
		t.Error("seed ran against a store whose config collection was not empty")
	}
	docs, _ := mem.ListOnce(ctx, db.ColConfig)
	var got bson.M
	if err := bson.Unmarshal(docs[0], &got); err != nil {
		t.Fatal(err)
	}
	if got["salonName"] != "Someone Else's Salon" {
		t.Error("seed overwrote an existing config document")
	}
}
