package catalog

import (
	"context"
	"errors"
	"log"

	"lotoria/db"
	"lotoria/mirror"
	"lotoria/models"
)

// saveList reconciles one catalog collection against a full desired list:
// every element is upserted, and documents present in the mirror but missing
// from the list are removed. "Save the remaining list" therefore really is
// "delete the removed ones" — callers do not have to diff themselves.
func saveList[T any](ctx context.Context, ses *mirror.Session, collection string, list []T, idOf func(T) string, existing []string) error {
	keep := make(map[string]bool, len(list))
	for _, item := range list {
		id := idOf(item)
		if id == "" {
			return errors.New(collection + ": element without id")
		}
		keep[id] = true
	}

	adapter := ses.Adapter()
	var errs []error
	for _, item := range list {
		id := idOf(item)
		if err := adapter.Upsert(ctx, collection, id, item); err != nil {
			log.Println("save upsert failed:", collection, id, err)
			errs = append(errs, err)
		}
	}
	for _, id := range existing {
		if keep[id] {
			continue
		}
		if err := adapter.Remove(ctx, collection, id); err != nil {
			log.Println("save remove failed:", collection, id, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func ids[T any](list []T, idOf func(T) string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, idOf(item))
	}
	return out
}

func SaveServices(ctx context.Context, ses *mirror.Session, list []models.Service) error {
	idOf := func(s models.Service) string { return s.ID }
	return saveList(ctx, ses, db.ColServices, list, idOf, ids(ses.Services(), idOf))
}

func SaveProducts(ctx context.Context, ses *mirror.Session, list []models.Product) error {
	idOf := func(p models.Product) string { return p.ID }
	return saveList(ctx, ses, db.ColProducts, list, idOf, ids(ses.Products(), idOf))
}

func SaveOffers(ctx context.Context, ses *mirror.Session, list []models.Offer) error {
	idOf := func(o models.Offer) string { return o.ID }
	return saveList(ctx, ses, db.ColOffers, list, idOf, ids(ses.Offers(), idOf))
}

func SaveTeam(ctx context.Context, ses *mirror.Session, list []models.TeamMember) error {
	idOf := func(t models.TeamMember) string { return t.ID }
	return saveList(ctx, ses, db.ColTeam, list, idOf, ids(ses.Team(), idOf))
}

func SaveGallery(ctx context.Context, ses *mirror.Session, list []models.GalleryItem) error {
	idOf := func(g models.GalleryItem) string { return g.ID }
	return saveList(ctx, ses, db.ColGallery, list, idOf, ids(ses.Gallery(), idOf))
}

func SaveReviews(ctx context.Context, ses *mirror.Session, list []models.Review) error {
	idOf := func(r models.Review) string { return r.ID }
	return saveList(ctx, ses, db.ColReviews, list, idOf, ids(ses.Reviews(), idOf))
}

func SavePages(ctx context.Context, ses *mirror.Session, list []models.CustomPage) error {
	idOf := func(p models.CustomPage) string { return p.ID }
	return saveList(ctx, ses, db.ColPages, list, idOf, ids(ses.Pages(), idOf))
}

// UpdateSiteConfig replaces the singleton config document.
func UpdateSiteConfig(ctx context.Context, ses *mirror.Session, cfg models.SiteConfig) error {
	cfg.ID = "main"
	return ses.Adapter().Upsert(ctx, db.ColConfig, cfg.ID, cfg)
}

// SaveUser upserts one user record; used for signup and profile edits alike.
func SaveUser(ctx context.Context, ses *mirror.Session, u models.User) error {
	if u.ID == "" {
		return errors.New("user without id")
	}
	return ses.Adapter().Upsert(ctx, db.ColUsers, u.ID, u)
}
