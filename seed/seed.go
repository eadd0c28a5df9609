package seed

import (
	"context"
	"log"

	"lotoria/db"
	"lotoria/globals"
	"lotoria/models"
	"lotoria/store"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminMobile is the login key of the seeded administrator account,
// overridable with ADMIN_MOBILE.
const DefaultAdminMobile = "9110111970"

const defaultAdminPassword = "Jyoti05" // placeholder pending a real auth subsystem

func AdminMobile() string {
	return globals.Getenv("ADMIN_MOBILE", DefaultAdminMobile)
}

// DefaultConfig is the hardcoded fallback SiteConfig, also used by the mirror
// until the remote copy arrives.
func DefaultConfig() models.SiteConfig {
	return models.SiteConfig{
		ID:               "main",
		SalonName:        "Lotoria Beauty Salon",
		Tagline:          "Home Beauty Service",
		LogoURL:          "/static/branding/logo.png",
		HeroImageURL:     "/static/branding/hero.jpg",
		ContactNumber:    "8210667364",
		Email:            "buylotoria@gmail.com",
		Address:          "Kanpur, India",
		FounderName:      "Aryan Kumar",
		FounderImageURL:  "/static/branding/founder.jpg",
		ThemeColor:       "GOLD",
		QRCodeURL:        "/api/pay/qr",
		UpiID:            "buyfuturemart@okicici",
		MissionStatement: "To provide luxury beauty services at your doorstep with premium products.",
		PromoBannerText:  "Grand Opening Offer: 20% OFF on all Facial Services!",
		SocialLinks: models.SocialLinks{
			Whatsapp:  "https://whatsapp.com/channel/lotoria",
			Instagram: "https://www.instagram.com/_lotoria",
			Facebook:  "https://www.facebook.com/lotoria",
		},
	}
}

func DefaultServices() []models.Service {
	return []models.Service{
		{
			ID:          "s1",
			Name:        "Luxury Gold Facial",
			Category:    "Facial",
			Price:       1499,
			Duration:    "60 mins",
			Image:       "/static/services/gold-facial.jpg",
			Description: "Premium gold radiance facial for glowing skin.",
		},
		{
			ID:          "s2",
			Name:        "Bridal Makeup",
			Category:    "Makeup",
			Price:       15000,
			Duration:    "180 mins",
			Image:       "/static/services/bridal-makeup.jpg",
			Description: "Complete bridal makeover by expert artists.",
		},
	}
}

func DefaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          "p1",
			Name:        "Lotoria Glow Serum",
			Price:       599,
			Category:    "Skincare",
			Image:       "/static/products/glow-serum.jpg",
			Description: "Vitamin C enriched serum.",
			Stock:       50,
		},
	}
}

func defaultAdmin() models.User {
	password := globals.Getenv("ADMIN_PASSWORD", defaultAdminPassword)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("admin password hash failed:", err)
	}
	return models.User{
		ID:       "admin_01",
		Name:     "Admin",
		Mobile:   AdminMobile(),
		Email:    "admin@lotoria.com",
		Address:  "Salon",
		Role:     models.RoleAdmin,
		Password: string(hash),
	}
}

// EnsureDefaults populates an empty store with the default config, catalog and
// admin account. The emptiness of the config collection is the only guard, so
// a seeded store is left untouched. Failures are logged and swallowed; the app
// carries on with the mirror's hardcoded defaults.
func EnsureDefaults(ctx context.Context, adapter store.Adapter) {
	docs, err := adapter.ListOnce(ctx, db.ColConfig)
	if err != nil {
		log.Println("seed check failed:", err)
		return
	}
	if len(docs) > 0 {
		return
	}

	cfg := DefaultConfig()
	writes := []store.Write{{Collection: db.ColConfig, ID: cfg.ID, Doc: cfg}}
	for _, s := range DefaultServices() {
		writes = append(writes, store.Write{Collection: db.ColServices, ID: s.ID, Doc: s})
	}
	for _, p := range DefaultProducts() {
		writes = append(writes, store.Write{Collection: db.ColProducts, ID: p.ID, Doc: p})
	}
	admin := defaultAdmin()
	writes = append(writes, store.Write{Collection: db.ColUsers, ID: admin.ID, Doc: admin})

	if err := adapter.ApplyBatch(ctx, writes); err != nil {
		log.Println("seed batch failed:", err)
		return
	}
	log.Println("seeded default catalog, config and admin account")
}
