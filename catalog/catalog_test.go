package catalog

import (
	"context"
	"testing"

	"lotoria/db"
	"lotoria/mirror"
	"lotoria/models"
	"lotoria/store"

	"go.mongodb.org/mongo-driver/bson"
)

func newSession(t *testing.T) (*store.Memory, *mirror.Session) {
	t.Helper()
	mem := store.NewMemory()
	ses, err := mirror.Open(context.Background(), mem, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ses.Close)
	return mem, ses
}

func TestSaveServicesRemovesDroppedElements(t *testing.T) {
	ctx := context.Background()
	mem, ses := newSession(t)

	// seeded services are s1 and s2; save a list without s2
	kept := []models.Service{}
	for _, s := range ses.Services() {
		if s.ID != "s2" {
			kept = append(kept, s)
		}
	}
	if err := SaveServices(ctx, ses, kept); err != nil {
		t.Fatal(err)
	}

	// the dropped element must be gone remotely, not just from the list
	docs, _ := mem.ListOnce(ctx, db.ColServices)
	if len(docs) != 1 {
		t.Fatalf("expected 1 remote service, got %d", len(docs))
	}
	var remaining bson.M
	if err := bson.Unmarshal(docs[0], &remaining); err != nil {
		t.Fatal(err)
	}
	if remaining["id"] != "s1" {
		t.Errorf("surviving service = %v, want s1", remaining["id"])
	}
	if services := ses.Services(); len(services) != 1 || services[0].ID != "s1" {
		t.Error("mirror did not converge on the saved list")
	}
}

func TestSaveServicesUpsertsChanges(t *testing.T) {
	ctx := context.Background()
	_, ses := newSession(t)

	list := ses.Services()
	list[0].Price = 1999
	list = append(list, models.Service{ID: "s3", Name: "Pedicure", Price: 400})
	if err := SaveServices(ctx, ses, list); err != nil {
		t.Fatal(err)
	}

	services := ses.Services()
	if len(services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(services))
	}
	if services[0].Price != 1999 {
		t.Errorf("price edit lost: %v", services[0].Price)
	}
}

func TestSaveListRejectsMissingIDs(t *testing.T) {
	ctx := context.Background()
	_, ses := newSession(t)

	err := SaveServices(ctx, ses, []models.Service{{Name: "No ID", Price: 100}})
	if err == nil {
		t.Error("expected an error for an element without id")
	}
	// the seeded catalog must survive a bad save untouched except for the diff
	if len(ses.Services()) == 0 {
		t.Error("bad save wiped the collection")
	}
}

func TestUpdateSiteConfigForcesSingletonID(t *testing.T) {
	ctx := context.Background()
	mem, ses := newSession(t)

	cfg := ses.Config()
	cfg.ID = "rogue"
	cfg.SalonName = "Renamed Salon"
	if err := UpdateSiteConfig(ctx, ses, cfg); err != nil {
		t.Fatal(err)
	}

	docs, _ := mem.ListOnce(ctx, db.ColConfig)
	if len(docs) != 1 {
		t.Fatalf("config collection grew to %d documents", len(docs))
	}
	if got := ses.Config(); got.SalonName != "Renamed Salon" || got.ID != "main" {
		t.Errorf("config = %+v", got)
	}
}

func TestSaveUser(t *testing.T) {
	ctx := context.Background()
	_, ses := newSession(t)

	u := models.User{ID: "u1", Name: "Asha", Mobile: "7777777777", Role: models.RoleCustomer}
	if err := SaveUser(ctx, ses, u); err != nil {
		t.Fatal(err)
	}
	if _, ok := ses.LoginUser("7777777777"); !ok {
		t.Error("saved user not resolvable by mobile")
	}

	if err := SaveUser(ctx, ses, models.User{Name: "No ID"}); err == nil {
		t.Error("expected an error for a user without id")
	}
}
