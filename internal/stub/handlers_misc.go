// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// # Fleet

func (server *Server) handleListCars(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	query := request.URL.Query()
	carType := query.Get("type")

	filtered := make([]stubCar, 0, len(server.cars))
	for _, car := range server.cars {
		if !car.Available {
			continue
		}
		if carType != "" && car.Type != carType {
			continue
		}
		filtered = append(filtered, car)
	}
	writeJSON(writer, http.StatusOK, map[string]any{"cars": filtered})
}

func (server *Server) handleCreateCar(writer http.ResponseWriter, request *http.Request) {
	var car stubCar
	if !decodeJSON(writer, request, &car) {
		return
	}
	if car.Brand == "" || car.Model == "" || car.RentalPrice <= 0 {
		writeBadRequest(writer, "brand, model and rentalPrice are required")
		return
	}

	server.mutex.Lock()
	car.ID = server.newID("car")
	server.cars = append(server.cars, car)
	server.mutex.Unlock()

	writeJSON(writer, http.StatusCreated, map[string]any{"car": car})
}

func (server *Server) handleUpdateCar(writer http.ResponseWriter, request *http.Request) {
	var input stubCar
	if !decodeJSON(writer, request, &input) {
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	carID := chi.URLParam(request, "carID")
	for index := range server.cars {
		if server.cars[index].ID != carID {
			continue
		}
		// A bare status payload toggles availability without clobbering the rest.
		if input.Brand == "" && input.Model == "" {
			server.cars[index].Available = input.Available
		} else {
			input.ID = carID
			server.cars[index] = input
		}
		writeJSON(writer, http.StatusOK, map[string]any{"car": server.cars[index]})
		return
	}
	writeNotFound(writer, "Car not found")
}

func (server *Server) handleDeleteCar(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	carID := chi.URLParam(request, "carID")
	for index := range server.cars {
		if server.cars[index].ID == carID {
			server.cars = append(server.cars[:index], server.cars[index+1:]...)
			writer.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeNotFound(writer, "Car not found")
}

func (server *Server) handleListMyRentals(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	mine := make([]stubRental, 0)
	for _, rental := range server.rentals {
		if rental.UserID == claims.UserID {
			mine = append(mine, rental)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"rentals": mine})
}

func (server *Server) handleCreateRental(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	var input struct {
		CarID         string `json:"carId"`
		StartDate     string `json:"startDate"`
		EndDate       string `json:"endDate"`
		DriverLicense string `json:"driverLicense"`
	}
	if !decodeJSON(writer, request, &input) {
		return
	}
	if input.DriverLicense == "" {
		writeBadRequest(writer, "driverLicense is required")
		return
	}

	start, errStart := time.Parse("2006-01-02", input.StartDate)
	end, errEnd := time.Parse("2006-01-02", input.EndDate)
	if errStart != nil || errEnd != nil || end.Before(start) {
		writeBadRequest(writer, "endDate must not precede startDate")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	var car *stubCar
	for index := range server.cars {
		if server.cars[index].ID == input.CarID {
			car = &server.cars[index]
			break
		}
	}
	if car == nil {
		writeNotFound(writer, "Car not found")
		return
	}
	if !car.Available {
		writeConflict(writer, "Car is not available")
		return
	}

	days := int(end.Sub(start).Hours()/24) + 1
	rental := stubRental{
		ID:          server.newID("rnt"),
		UserID:      claims.UserID,
		CarID:       car.ID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      "pending",
		TotalAmount: float64(days) * car.RentalPrice,
	}
	server.rentals = append(server.rentals, rental)

	writeJSON(writer, http.StatusCreated, map[string]any{"rental": rental})
}

// # Checkout

func (server *Server) handleListMySessions(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	mine := make([]stubCheckoutSession, 0)
	for _, session := range server.sessions {
		if session.UserID == claims.UserID {
			mine = append(mine, session)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"sessions": mine})
}

/*
handleCheckoutSummary assembles the running bill for a stay window.

Every chargeable the guest accrued is folded in: confirmed or completed
bookings, delivered food orders, rentals and completed custom requests.
The summary is ephemeral; nothing is persisted until completion.
*/
func (server *Server) handleCheckoutSummary(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	checkIn := request.URL.Query().Get("checkInDate")
	checkOut := request.URL.Query().Get("checkOutDate")
	if checkIn == "" || checkOut == "" {
		writeBadRequest(writer, "checkInDate and checkOutDate are required")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	summary := server.buildSummary(claims.UserID, checkIn, checkOut)
	writeJSON(writer, http.StatusOK, map[string]any{"summary": summary})
}

func (server *Server) handleCompleteCheckout(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	var input struct {
		CheckoutID    string `json:"checkoutId"`
		PaymentMethod string `json:"paymentMethod"`
		Notes         string `json:"notes"`
	}
	if !decodeJSON(writer, request, &input) {
		return
	}
	if input.PaymentMethod == "" {
		writeBadRequest(writer, "paymentMethod is required")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	for index := range server.sessions {
		session := &server.sessions[index]
		if session.ID != input.CheckoutID || session.UserID != claims.UserID {
			continue
		}
		if session.Status == "completed" {
			writeConflict(writer, "Checkout already settled")
			return
		}
		session.Status = "completed"
		session.PaymentStatus = "paid"
		session.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		writeJSON(writer, http.StatusOK, map[string]any{"session": session})
		return
	}

	// No stored session yet; settle an ad-hoc bill from current charges.
	session := server.buildSummary(claims.UserID, "", "")
	session.Status = "completed"
	session.PaymentStatus = "paid"
	server.sessions = append(server.sessions, *session)
	writeJSON(writer, http.StatusOK, map[string]any{"session": session})
}

// buildSummary folds the user's charges into one session. Caller holds the mutex.
func (server *Server) buildSummary(userID string, checkIn string, checkOut string) *stubCheckoutSession {
	const taxRate = 0.10

	now := time.Now().UTC().Format(time.RFC3339)
	session := &stubCheckoutSession{
		ID:            server.newID("chk"),
		UserID:        userID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Status:        "active",
		PaymentStatus: "pending",
		Services:      []stubServiceItem{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, booking := range server.bookings {
		if booking.UserID != userID || (booking.Status != "confirmed" && booking.Status != "completed") {
			continue
		}
		session.Services = append(session.Services, stubServiceItem{
			Type: "room", ServiceID: booking.ID, ServiceModel: "Booking",
			Description: "Room reservation", Amount: booking.TotalAmount,
			Status: booking.Status, AddedAt: now,
		})
		session.Subtotal += booking.TotalAmount
	}
	for _, order := range server.orders {
		if order.UserID != userID || order.Status == "cancelled" {
			continue
		}
		session.Services = append(session.Services, stubServiceItem{
			Type: "food", ServiceID: order.ID, ServiceModel: "FoodOrder",
			Description: "Dining order", Amount: order.TotalAmount,
			Status: order.Status, AddedAt: order.CreatedAt,
		})
		session.Subtotal += order.TotalAmount
	}
	for _, rental := range server.rentals {
		if rental.UserID != userID || rental.Status == "cancelled" {
			continue
		}
		session.Services = append(session.Services, stubServiceItem{
			Type: "car", ServiceID: rental.ID, ServiceModel: "CarRental",
			Description: "Car rental", Amount: rental.TotalAmount,
			Status: rental.Status, AddedAt: now,
		})
		session.Subtotal += rental.TotalAmount
	}
	for _, foodRequest := range server.requests {
		if foodRequest.Requester == nil || foodRequest.Requester.ID != userID || foodRequest.Status != "completed" {
			continue
		}
		session.Services = append(session.Services, stubServiceItem{
			Type: "custom_food", ServiceID: foodRequest.ID, ServiceModel: "CustomFoodRequest",
			Description: foodRequest.RequestTitle, Amount: foodRequest.FinalPrice,
			Status: foodRequest.Status, AddedAt: foodRequest.UpdatedAt,
		})
		session.Subtotal += foodRequest.FinalPrice
	}

	session.Taxes = session.Subtotal * taxRate
	session.TotalAmount = session.Subtotal + session.Taxes
	return session
}

func (server *Server) handleAdminListSessions(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	status := request.URL.Query().Get("status")
	filtered := make([]stubCheckoutSession, 0, len(server.sessions))
	for _, session := range server.sessions {
		if status == "" || session.Status == status {
			filtered = append(filtered, session)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"sessions": filtered})
}

func (server *Server) handleCheckoutStats(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	stats := struct {
		TotalSessions     int     `json:"totalSessions"`
		ActiveSessions    int     `json:"activeSessions"`
		CompletedSessions int     `json:"completedSessions"`
		TotalRevenue      float64 `json:"totalRevenue"`
	}{TotalSessions: len(server.sessions)}

	for _, session := range server.sessions {
		switch session.Status {
		case "active":
			stats.ActiveSessions++
		case "completed":
			stats.CompletedSessions++
			stats.TotalRevenue += session.TotalAmount
		}
	}
	writeJSON(writer, http.StatusOK, stats)
}

// # Site & Directory

func (server *Server) handleGetSettings(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	writeJSON(writer, http.StatusOK, map[string]any{"data": server.settings})
}

func (server *Server) handleUpdateSettings(writer http.ResponseWriter, request *http.Request) {
	var updated stubSettings
	if !decodeJSON(writer, request, &updated) {
		return
	}

	server.mutex.Lock()
	server.settings = updated
	server.mutex.Unlock()

	writeJSON(writer, http.StatusOK, map[string]any{"data": updated})
}

func (server *Server) handleListImages(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	category := request.URL.Query().Get("category")
	filtered := make([]stubImage, 0, len(server.images))
	for _, image := range server.images {
		if category == "" || image.Category == category {
			filtered = append(filtered, image)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{
		"message": "ok",
		"images":  filtered,
		"count":   len(filtered),
	})
}

func (server *Server) handleListBanners(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	writeJSON(writer, http.StatusOK, map[string]any{"banners": server.banners})
}

func (server *Server) handleUploadBanner(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Title    string `json:"title"`
		ImageURL string `json:"imageUrl"`
	}
	if !decodeJSON(writer, request, &input) {
		return
	}
	if input.ImageURL == "" {
		writeBadRequest(writer, "imageUrl is required")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	banner := stubBanner{
		ID:        server.newID("bnr"),
		Title:     input.Title,
		ImageURL:  input.ImageURL,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	server.banners = append(server.banners, banner)

	writeJSON(writer, http.StatusCreated, map[string]any{"banner": banner})
}

func (server *Server) handleDeleteBanner(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	bannerID := chi.URLParam(request, "bannerID")
	for index, banner := range server.banners {
		if banner.ID == bannerID {
			server.banners = append(server.banners[:index], server.banners[index+1:]...)
			writeJSON(writer, http.StatusOK, map[string]any{"message": "Banner deleted"})
			return
		}
	}
	writeNotFound(writer, "Banner not found")
}

func (server *Server) handleDashboard(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	stats := struct {
		TotalUsers      int `json:"totalUsers"`
		ActiveUsers     int `json:"activeUsers"`
		TotalRooms      int `json:"totalRooms"`
		AvailableRooms  int `json:"availableRooms"`
		TotalBookings   int `json:"totalBookings"`
		PendingBookings int `json:"pendingBookings"`
		TotalOrders     int `json:"totalOrders"`
		PendingOrders   int `json:"pendingOrders"`
	}{
		TotalUsers:    len(server.users),
		TotalRooms:    len(server.rooms),
		TotalBookings: len(server.bookings),
		TotalOrders:   len(server.orders),
	}
	for _, user := range server.users {
		if user.IsActive {
			stats.ActiveUsers++
		}
	}
	for _, room := range server.rooms {
		if room.Status == "available" {
			stats.AvailableRooms++
		}
	}
	for _, booking := range server.bookings {
		if booking.Status == "pending" {
			stats.PendingBookings++
		}
	}
	for _, order := range server.orders {
		if order.Status == "pending" {
			stats.PendingOrders++
		}
	}

	writeJSON(writer, http.StatusOK, map[string]any{"stats": stats})
}

func (server *Server) handleListUsers(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	role := request.URL.Query().Get("role")
	users := make([]*stubUser, 0, len(server.users))
	for _, user := range server.users {
		if role == "" || user.Role == role {
			users = append(users, user)
		}
	}

	writeJSON(writer, http.StatusOK, map[string]any{
		"users": users,
		"pagination": map[string]int{
			"page": 1, "limit": len(users), "totalPages": 1, "totalUsers": len(users),
		},
	})
}

func (server *Server) handleUpdateUser(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
		Role      string `json:"role"`
		IsActive  *bool  `json:"isActive"`
	}
	if !decodeJSON(writer, request, &input) {
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	userID := chi.URLParam(request, "userID")
	user := server.userByID(userID)
	if user == nil {
		writeNotFound(writer, "User not found")
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	user.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	writeJSON(writer, http.StatusOK, map[string]any{"user": user})
}
