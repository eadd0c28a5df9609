package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestUpsertIsWholesaleReplace(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Upsert(ctx, "things", "x", bson.M{"id": "x", "a": 1, "b": 2, "c": 3}); err != nil {
		t.Fatal(err)
	}
	if err := m.Upsert(ctx, "things", "x", bson.M{"id": "x", "a": 10, "b": 20}); err != nil {
		t.Fatal(err)
	}

	docs, err := m.ListOnce(ctx, "things")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	var got bson.M
	if err := bson.Unmarshal(docs[0], &got); err != nil {
		t.Fatal(err)
	}
	if _, stale := got["c"]; stale {
		t.Error("upsert retained a field from the previous document version")
	}
	if got["a"] != int32(10) && got["a"] != int64(10) {
		t.Errorf("unexpected value for a: %v", got["a"])
	}
}

func TestSubscribeFiresImmediatelyAndOnChange(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var snapshots [][]bson.Raw
	unsub, err := m.Subscribe(ctx, "things", func(docs []bson.Raw) {
		snapshots = append(snapshots, docs)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 1 || len(snapshots[0]) != 0 {
		t.Fatalf("expected one empty initial snapshot, got %d snapshots", len(snapshots))
	}

	if err := m.Upsert(ctx, "things", "x", bson.M{"id": "x"}); err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 2 || len(snapshots[1]) != 1 {
		t.Fatalf("expected a second snapshot with 1 doc, got %d snapshots", len(snapshots))
	}

	// changes to other collections must not fire this subscription
	if err := m.Upsert(ctx, "other", "y", bson.M{"id": "y"}); err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 2 {
		t.Error("subscription fired for a foreign collection")
	}

	unsub()
	if err := m.Upsert(ctx, "things", "z", bson.M{"id": "z"}); err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 2 {
		t.Error("subscription fired after unsubscribe")
	}
}

func TestUpdateFieldsGuard(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Upsert(ctx, "bookings", "b1", bson.M{"id": "b1", "status": "PENDING", "serviceName": "Facial"}); err != nil {
		t.Fatal(err)
	}

	ok, err := m.UpdateFields(ctx, "bookings", "b1",
		map[string][]string{"status": {"PENDING"}},
		map[string]any{"status": "CONFIRMED"})
	if err != nil || !ok {
		t.Fatalf("guarded update should match: ok=%v err=%v", ok, err)
	}

	// same guard again: the record is no longer PENDING
	ok, err = m.UpdateFields(ctx, "bookings", "b1",
		map[string][]string{"status": {"PENDING"}},
		map[string]any{"status": "CONFIRMED"})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("guard matched a stale status")
	}

	// unknown id
	ok, _ = m.UpdateFields(ctx, "bookings", "nope",
		map[string][]string{"status": {"PENDING"}},
		map[string]any{"status": "CONFIRMED"})
	if ok {
		t.Error("guard matched a missing document")
	}

	// untouched fields survive the partial update
	docs, _ := m.ListOnce(ctx, "bookings")
	var got bson.M
	if err := bson.Unmarshal(docs[0], &got); err != nil {
		t.Fatal(err)
	}
	if got["serviceName"] != "Facial" {
		t.Errorf("partial update clobbered an unrelated field: %v", got["serviceName"])
	}
	if got["status"] != "CONFIRMED" {
		t.Errorf("status = %v, want CONFIRMED", got["status"])
	}
}

func TestApplyBatchNotifiesOncePerCollection(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	fired := 0
	if _, err := m.Subscribe(ctx, "services", func([]bson.Raw) { fired++ }); err != nil {
		t.Fatal(err)
	}
	fired = 0 // drop the initial snapshot

	err := m.ApplyBatch(ctx, []Write{
		{Collection: "services", ID: "s1", Doc: bson.M{"id": "s1"}},
		{Collection: "services", ID: "s2", Doc: bson.M{"id": "s2"}},
		{Collection: "products", ID: "p1", Doc: bson.M{"id": "p1"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("expected one notification for the batch, got %d", fired)
	}
	docs, _ := m.ListOnce(ctx, "services")
	if len(docs) != 2 {
		t.Errorf("expected 2 services after batch, got %d", len(docs))
	}
}

func TestUpsertEnforcesUniqueField(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.EnforceUnique("users", "mobile")

	if err := m.Upsert(ctx, "users", "u1", bson.M{"id": "u1", "mobile": "9000000001"}); err != nil {
		t.Fatal(err)
	}
	// a second document claiming the same mobile loses
	if err := m.Upsert(ctx, "users", "u2", bson.M{"id": "u2", "mobile": "9000000001"}); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	docs, _ := m.ListOnce(ctx, "users")
	if len(docs) != 1 {
		t.Fatalf("rejected upsert still landed, %d docs", len(docs))
	}

	// replacing the same document keeps its own mobile without tripping
	if err := m.Upsert(ctx, "users", "u1", bson.M{"id": "u1", "mobile": "9000000001", "name": "A"}); err != nil {
		t.Errorf("self-replace tripped the unique check: %v", err)
	}
	if err := m.Upsert(ctx, "users", "u2", bson.M{"id": "u2", "mobile": "9000000002"}); err != nil {
		t.Errorf("distinct mobile rejected: %v", err)
	}
}

func TestSubscribeOrderingUnderConcurrentWrites(t *testing.T) {
	ctx := context.Background()

	// snapshots are delivered while the store lock is held, so the sizes a
	// subscriber observes can only grow; a stale initial snapshot arriving
	// after a writer's newer one would show up as a regression here
	for iter := 0; iter < 50; iter++ {
		m := NewMemory()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				id := fmt.Sprintf("d%02d", i)
				if err := m.Upsert(ctx, "things", id, bson.M{"id": id}); err != nil {
					t.Error(err)
					return
				}
			}
		}()

		var mu sync.Mutex
		var sizes []int
		unsub, err := m.Subscribe(ctx, "things", func(docs []bson.Raw) {
			mu.Lock()
			sizes = append(sizes, len(docs))
			mu.Unlock()
		})
		if err != nil {
			t.Fatal(err)
		}
		wg.Wait()
		unsub()

		mu.Lock()
		for i := 1; i < len(sizes); i++ {
			if sizes[i] < sizes[i-1] {
				t.Fatalf("snapshot sizes regressed: %v", sizes)
			}
		}
		last := sizes[len(sizes)-1]
		mu.Unlock()

		// the subscription outlived every write, so the last snapshot it saw
		// must be the complete collection
		if docs, _ := m.ListOnce(ctx, "things"); last != len(docs) {
			t.Fatalf("subscriber last saw %d docs, store holds %d", last, len(docs))
		}
	}
}
