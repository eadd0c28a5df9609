package mirror

import (
	"context"
	"testing"

	"lotoria/db"
	"lotoria/models"
	"lotoria/store"
)

func openSession(t *testing.T, mem *store.Memory) *Session {
	t.Helper()
	ses, err := Open(context.Background(), mem, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ses.Close)
	return ses
}

func TestOpenSeedsAndMirrorsDefaults(t *testing.T) {
	ses := openSession(t, store.NewMemory())

	services := ses.Services()
	if len(services) != 2 {
		t.Fatalf("expected 2 seeded services, got %d", len(services))
	}
	if services[0].ID != "s1" || services[1].ID != "s2" {
		t.Errorf("seeded service ids = %s, %s; want s1, s2", services[0].ID, services[1].ID)
	}
	if products := ses.Products(); len(products) != 1 || products[0].ID != "p1" {
		t.Error("seeded product p1 missing from the mirror")
	}
	if cfg := ses.Config(); cfg.UpiID == "" || cfg.SalonName == "" {
		t.Error("mirror config missing seeded fields")
	}
}

func TestMirrorObservesForeignWrites(t *testing.T) {
	mem := store.NewMemory()
	ses := openSession(t, mem)

	// a second client writes directly through the shared store
	b := models.Booking{ID: "b9", UserID: "u1", Status: models.StatusPending}
	if err := mem.Upsert(context.Background(), db.ColBookings, b.ID, b); err != nil {
		t.Fatal(err)
	}

	got, ok := ses.Booking("b9")
	if !ok {
		t.Fatal("mirror did not pick up a foreign write")
	}
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
}

func TestOnChangeFiresPerSnapshot(t *testing.T) {
	mem := store.NewMemory()
	changed := map[string]int{}
	ses, err := Open(context.Background(), mem, func(collection string) {
		changed[collection]++
	})
	if err != nil {
		t.Fatal(err)
	}
	defer ses.Close()

	// every collection delivers an initial snapshot
	for _, name := range db.All {
		if changed[name] == 0 {
			t.Errorf("no initial notification for %s", name)
		}
	}

	before := changed[db.ColServices]
	if err := mem.Upsert(context.Background(), db.ColServices, "s3", models.Service{ID: "s3", Name: "Pedicure", Price: 400}); err != nil {
		t.Fatal(err)
	}
	if changed[db.ColServices] != before+1 {
		t.Error("write did not raise a change notification")
	}
}

func TestConfigSingletonRetainedWhenEmpty(t *testing.T) {
	mem := store.NewMemory()
	ses := openSession(t, mem)

	name := ses.Config().SalonName
	if name == "" {
		t.Fatal("expected a seeded config")
	}

	// deleting the remote singleton must not clear the in-memory config
	if err := mem.Remove(context.Background(), db.ColConfig, "main"); err != nil {
		t.Fatal(err)
	}
	if got := ses.Config().SalonName; got != name {
		t.Errorf("config cleared after empty snapshot: %q", got)
	}
}

func TestCloseTearsDownEverySubscription(t *testing.T) {
	mem := store.NewMemory()
	ses := openSession(t, mem)

	ses.Close()
	if err := mem.Upsert(context.Background(), db.ColServices, "s9", models.Service{ID: "s9", Name: "Waxing", Price: 300}); err != nil {
		t.Fatal(err)
	}
	for _, s := range ses.Services() {
		if s.ID == "s9" {
			t.Error("closed session still receives snapshots")
		}
	}
	ses.Close() // second close is a no-op
}

func TestMirrorConsistencyAfterSubscriptionChurn(t *testing.T) {
	mem := store.NewMemory()
	first := openSession(t, mem)
	first.Close()

	// an independent writer adds documents while the first session is closed
	ctx := context.Background()
	want := []string{"g1", "g2", "g3"}
	for _, id := range want {
		if err := mem.Upsert(ctx, db.ColGallery, id, models.GalleryItem{ID: id, ImageURL: "/x.jpg"}); err != nil {
			t.Fatal(err)
		}
	}

	reopened := openSession(t, mem)
	gallery := reopened.Gallery()
	if len(gallery) != len(want) {
		t.Fatalf("expected %d gallery items after reopen, got %d", len(want), len(gallery))
	}
	for i, id := range want {
		if gallery[i].ID != id {
			t.Errorf("gallery[%d] = %s, want %s", i, gallery[i].ID, id)
		}
	}
}

func TestLoginUserExactMatch(t *testing.T) {
	mem := store.NewMemory()
	ses := openSession(t, mem)

	usersBefore := len(ses.Users())

	if _, ok := ses.LoginUser("0000000000"); ok {
		t.Error("login resolved a mobile number that does not exist")
	}
	if len(ses.Users()) != usersBefore {
		t.Error("a failed login lookup must not create a user")
	}

	u := models.User{ID: "u7", Name: "Asha", Mobile: "7777777777", Role: models.RoleCustomer}
	if err := mem.Upsert(context.Background(), db.ColUsers, u.ID, u); err != nil {
		t.Fatal(err)
	}
	got, ok := ses.LoginUser("7777777777")
	if !ok || got.ID != "u7" {
		t.Fatalf("exact-match login failed: ok=%v got=%+v", ok, got)
	}
	// prefixes and suffixes never match
	if _, ok := ses.LoginUser("777777777"); ok {
		t.Error("login matched a partial mobile number")
	}
}
