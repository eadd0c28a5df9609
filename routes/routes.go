package routes

import (
	"net/http"

	"lotoria/auth"
	"lotoria/catalog"
	"lotoria/middleware"
	"lotoria/orders"
	"lotoria/pay"
	"lotoria/ratelim"
	"lotoria/ws"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/gallerypic/*filepath", http.Dir("static/gallerypic"))
	router.ServeFiles("/static/branding/*filepath", http.Dir("static/branding"))
	router.ServeFiles("/static/services/*filepath", http.Dir("static/services"))
	router.ServeFiles("/static/products/*filepath", http.Dir("static/products"))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler) {
	router.POST("/api/auth/request-otp", ratelim.RateLimit(h.RequestOTP))
	router.POST("/api/auth/login", ratelim.RateLimit(h.Login))
	router.POST("/api/auth/register", ratelim.RateLimit(h.Register))
	router.PUT("/api/auth/profile", middleware.Authenticate(h.UpdateProfile))
	router.POST("/api/admin/unlock", middleware.AdminOnly(h.Unlock))
}

func AddCatalogRoutes(router *httprouter.Router, h *catalog.Handler) {
	router.GET("/api/site-config", h.GetSiteConfig)
	router.GET("/api/services", h.GetServices)
	router.GET("/api/products", h.GetProducts)
	router.GET("/api/offers", h.GetOffers)
	router.GET("/api/team", h.GetTeam)
	router.GET("/api/gallery", h.GetGallery)
	router.GET("/api/reviews", h.GetReviews)
	router.GET("/api/pages", h.GetPages)
	router.GET("/api/pages/:id", h.GetPage)

	router.POST("/api/reviews", ratelim.RateLimit(middleware.Authenticate(h.AddReview)))

	router.PUT("/api/admin/config", middleware.AdminUnlocked(h.UpdateConfig))
	router.PUT("/api/admin/services", middleware.AdminUnlocked(h.SaveServices))
	router.PUT("/api/admin/products", middleware.AdminUnlocked(h.SaveProducts))
	router.PUT("/api/admin/offers", middleware.AdminUnlocked(h.SaveOffers))
	router.PUT("/api/admin/team", middleware.AdminUnlocked(h.SaveTeam))
	router.PUT("/api/admin/gallery", middleware.AdminUnlocked(h.SaveGallery))
	router.PUT("/api/admin/reviews", middleware.AdminUnlocked(h.SaveReviewsAdmin))
	router.PUT("/api/admin/pages", middleware.AdminUnlocked(h.SavePages))
	router.POST("/api/admin/gallery/upload", middleware.AdminUnlocked(h.UploadGalleryImage))
	router.GET("/api/admin/users", middleware.AdminOnly(h.GetUsers))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handler) {
	router.POST("/api/bookings", ratelim.RateLimit(middleware.Authenticate(h.CreateBooking)))
	router.GET("/api/bookings", middleware.Authenticate(h.MyBookings))
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(h.Checkout)))
	router.GET("/api/orders", middleware.Authenticate(h.MyOrders))
	router.GET("/api/orders/:id/receipt", middleware.Authenticate(h.OrderReceipt))

	router.PATCH("/api/admin/bookings/:id/status", middleware.AdminUnlocked(h.SetBookingStatus))
	router.PATCH("/api/admin/bookings/:id/note", middleware.AdminUnlocked(h.SetBookingNote))
	router.PATCH("/api/admin/orders/:id/status", middleware.AdminUnlocked(h.SetOrderStatus))
	router.PATCH("/api/admin/orders/:id/note", middleware.AdminUnlocked(h.SetOrderNote))
}

func AddPayRoutes(router *httprouter.Router, h *pay.Handler) {
	router.GET("/api/pay/upi", h.UPILink)
	router.GET("/api/pay/qr", h.UPIQR)
}

func AddWSRoutes(router *httprouter.Router, hub *ws.Hub) {
	router.GET("/ws/updates", hub.HandleWS)
}
