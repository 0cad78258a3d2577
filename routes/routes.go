package routes

import (
	"soko/admin"
	"soko/auth"
	"soko/booking"
	"soko/listings"
	"soko/middleware"
	"soko/models"
	"soko/ratelim"

	"github.com/julienschmidt/httprouter"
)

// Wire registers every route group on the router.
func Wire(router *httprouter.Router, rl *ratelim.RateLimiter, listingSvc *listings.Service, adminSvc *admin.Service) {
	AddAuthRoutes(router, rl)
	AddListingRoutes(router, rl, listingSvc)
	AddAdminRoutes(router, rl, listingSvc, adminSvc)
	AddBookingRoutes(router, rl)
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddListingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *listings.Service) {
	router.GET("/api/listings", middleware.OptionalAuth(svc.GetListings))
	router.GET("/api/listings/:listingid", svc.GetListing)

	// Kept on its own prefix: a static "featured" segment cannot share
	// /api/listings with the :listingid wildcard.
	router.GET("/api/featured/:category", svc.GetFeatured)

	router.POST("/api/listings",
		middleware.Chain(
			rl.Limit,
			middleware.Authenticate,
			middleware.RequireRoles(models.RoleVendor, models.RoleAdmin),
		)(svc.CreateListing),
	)
	router.PUT("/api/listings/:listingid",
		middleware.Chain(
			rl.Limit,
			middleware.Authenticate,
			middleware.RequireRoles(models.RoleVendor, models.RoleAdmin),
		)(svc.UpdateListing),
	)
	router.DELETE("/api/listings/:listingid",
		middleware.Chain(
			rl.Limit,
			middleware.Authenticate,
			middleware.RequireRoles(models.RoleVendor, models.RoleAdmin),
		)(svc.DeleteListing),
	)
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, listingSvc *listings.Service, adminSvc *admin.Service) {
	adminOnly := middleware.Chain(
		rl.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleAdmin),
	)

	router.GET("/api/admin/vendors/pending", adminOnly(adminSvc.GetPendingVendors))
	router.PATCH("/api/admin/vendors/:vendorid/approve", adminOnly(adminSvc.ApproveVendor))
	router.PATCH("/api/admin/vendors/:vendorid/reject", adminOnly(adminSvc.RejectVendor))

	router.PATCH("/api/admin/listings/:listingid/approve", adminOnly(listingSvc.ApproveListing))
	router.PATCH("/api/admin/listings/:listingid/reject", adminOnly(listingSvc.RejectListing))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := middleware.Chain(rl.Limit, middleware.Authenticate)

	router.POST("/api/bookings", authed(booking.CreateBooking))
	router.GET("/api/bookings/mine", authed(booking.GetMyBookings))
	router.PATCH("/api/bookings/:bookingid", authed(booking.DecideBooking))
}
