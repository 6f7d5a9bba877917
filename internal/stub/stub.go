// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package stub implements an in-memory development backend.

It serves the same HTTP contract the concierge client consumes, with seeded
catalogue data and real HS256 token issuance, so the client can be developed
and tested without the production API. State lives in process memory and
resets on restart.

The stub is served standalone by cmd/stubapi and mounted inside httptest
servers by the transport tests.
*/
package stub

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Server is the in-memory backend. All mutable state sits behind one mutex;
// contention is irrelevant at development scale.
type Server struct {
	tokens *tokenService
	logger *slog.Logger

	mutex    sync.Mutex
	users    map[string]*stubUser
	rooms    []stubRoom
	menu     []stubMenuItem
	cars     []stubCar
	bookings []stubBooking
	rentals  []stubRental
	orders   []stubOrder
	requests []stubRequest
	sessions []stubCheckoutSession
	settings stubSettings
	images   []stubImage
	banners  []stubBanner
	nextID   int
}

// NewServer constructs a seeded stub backend signing tokens with jwtSecret.
func NewServer(jwtSecret string, logger *slog.Logger) *Server {
	server := &Server{
		tokens: newTokenService(jwtSecret),
		logger: logger.With(slog.String("component", "stub")),
		users:  make(map[string]*stubUser),
		nextID: 1,
	}
	server.seed()
	return server
}

// Router assembles the full route table.
func (server *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(server.requestLogging)

	// Public surface.
	router.Post("/api/auth/google-signin", server.handleGoogleSignIn)
	router.Post("/api/auth/refresh-token", server.handleRefreshToken)
	router.Get("/api/rooms", server.handleListRooms)
	router.Get("/api/rooms/{roomID}", server.handleGetRoom)
	router.Get("/api/dining/menu", server.handleListMenu)
	router.Get("/api/cars", server.handleListCars)
	router.Get("/api/settings", server.handleGetSettings)
	router.Get("/api/about-images/list", server.handleListImages)
	router.Get("/api/banners", server.handleListBanners)

	// Guest surface. Requires any authenticated session.
	router.Group(func(guest chi.Router) {
		guest.Use(server.authenticate, requireAuth)

		guest.Get("/api/bookings", server.handleListMyBookings)
		guest.Post("/api/bookings", server.handleCreateBooking)
		guest.Get("/api/bookings/{bookingID}", server.handleGetBooking)
		guest.Put("/api/bookings/{bookingID}/cancel", server.handleCancelBooking)

		guest.Get("/api/food-orders", server.handleListMyOrders)
		guest.Post("/api/food-orders", server.handleCreateOrder)
		guest.Get("/api/food-orders/{orderID}", server.handleGetOrder)
		guest.Put("/api/food-orders/{orderID}/cancel", server.handleCancelOrder)

		guest.Post("/api/custom-food-requests", server.handleCreateRequest)
		guest.Get("/api/custom-food-requests/user", server.handleListMyRequests)
		guest.Post("/api/custom-food-requests/{requestID}/cancel", server.handleCancelRequest)

		guest.Get("/api/cars/rentals", server.handleListMyRentals)
		guest.Post("/api/cars/rentals", server.handleCreateRental)

		guest.Get("/api/checkout/sessions", server.handleListMySessions)
		guest.Get("/api/checkout/summary", server.handleCheckoutSummary)
		guest.Post("/api/checkout/complete", server.handleCompleteCheckout)
	})

	// Back-office surface. Requires the admin role.
	router.Group(func(admin chi.Router) {
		admin.Use(server.authenticate, requireAuth, requireAdmin)

		admin.Get("/api/admin/rooms", server.handleAdminListRooms)
		admin.Post("/api/admin/rooms", server.handleCreateRoom)
		admin.Put("/api/admin/rooms/{roomID}", server.handleUpdateRoom)
		admin.Put("/api/admin/rooms/{roomID}/status", server.handleUpdateRoomStatus)
		admin.Delete("/api/admin/rooms/{roomID}", server.handleDeleteRoom)
		admin.Delete("/api/admin/rooms/{roomID}/images/{imageIndex}", server.handleDeleteRoomImage)

		admin.Get("/api/admin/bookings", server.handleAdminListBookings)
		admin.Put("/api/admin/bookings/{bookingID}/accept", server.handleAcceptBooking)
		admin.Put("/api/admin/bookings/{bookingID}/reject", server.handleRejectBooking)
		admin.Put("/api/admin/bookings/{bookingID}/complete", server.handleCompleteBooking)

		admin.Get("/api/dining/admin/menu", server.handleAdminListMenu)
		admin.Post("/api/dining/admin/menu", server.handleCreateMenuItem)
		admin.Put("/api/dining/admin/menu/{itemID}", server.handleUpdateMenuItem)
		admin.Put("/api/dining/admin/menu/{itemID}/status", server.handleSetMenuAvailability)
		admin.Delete("/api/dining/admin/menu/{itemID}", server.handleDeleteMenuItem)

		admin.Get("/api/food-orders/admin/orders", server.handleAdminListOrders)
		admin.Get("/api/food-orders/admin/orders/pending", server.handlePendingOrders)
		admin.Get("/api/food-orders/admin/orders/analytics", server.handleOrderAnalytics)
		admin.Put("/api/food-orders/admin/orders/{orderID}/status", server.handleUpdateOrderStatus)
		admin.Delete("/api/food-orders/admin/orders/{orderID}", server.handleDeleteOrder)

		admin.Get("/api/custom-food-requests/admin/all", server.handleAdminListRequests)
		admin.Post("/api/custom-food-requests/admin/{requestID}/approve", server.handleApproveRequest)
		admin.Post("/api/custom-food-requests/admin/{requestID}/reject", server.handleRejectRequest)
		admin.Post("/api/custom-food-requests/admin/{requestID}/complete", server.handleCompleteRequest)
		admin.Get("/api/custom-food-requests/admin/stats", server.handleRequestStats)

		admin.Post("/api/cars", server.handleCreateCar)
		admin.Put("/api/cars/{carID}", server.handleUpdateCar)
		admin.Delete("/api/cars/{carID}", server.handleDeleteCar)

		admin.Get("/api/checkout/admin/sessions", server.handleAdminListSessions)
		admin.Get("/api/checkout/admin/stats", server.handleCheckoutStats)

		admin.Get("/api/users", server.handleListUsers)
		admin.Put("/api/users/{userID}", server.handleUpdateUser)

		admin.Put("/api/settings", server.handleUpdateSettings)

		admin.Post("/api/admin/banners", server.handleUploadBanner)
		admin.Delete("/api/admin/banners/{bannerID}", server.handleDeleteBanner)
		admin.Get("/api/admin/dashboard", server.handleDashboard)
	})

	return router
}
