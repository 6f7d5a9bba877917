// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// # Rooms

func (server *Server) handleListRooms(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	// Guests only see rooms fit to sell.
	available := make([]stubRoom, 0, len(server.rooms))
	for _, room := range server.rooms {
		if room.Status == "available" {
			available = append(available, room)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"rooms": available})
}

func (server *Server) handleGetRoom(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	roomID := chi.URLParam(request, "roomID")
	for _, room := range server.rooms {
		if room.ID == roomID {
			writeJSON(writer, http.StatusOK, map[string]any{"room": room})
			return
		}
	}
	writeNotFound(writer, "Room not found")
}

func (server *Server) handleAdminListRooms(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	status := request.URL.Query().Get("status")
	roomType := request.URL.Query().Get("type")

	filtered := make([]stubRoom, 0, len(server.rooms))
	for _, room := range server.rooms {
		if status != "" && room.Status != status {
			continue
		}
		if roomType != "" && room.Type != roomType {
			continue
		}
		filtered = append(filtered, room)
	}

	writeJSON(writer, http.StatusOK, map[string]any{
		"rooms": filtered,
		"pagination": map[string]int{
			"page": 1, "limit": len(filtered), "totalPages": 1, "totalRooms": len(filtered),
		},
	})
}

func (server *Server) handleCreateRoom(writer http.ResponseWriter, request *http.Request) {
	var room stubRoom
	if !decodeJSON(writer, request, &room) {
		return
	}
	if room.RoomNumber == "" || room.Type == "" || room.Price <= 0 {
		writeBadRequest(writer, "roomNumber, type and price are required")
		return
	}

	server.mutex.Lock()
	room.ID = server.newID("room")
	if room.Status == "" {
		room.Status = "available"
	}
	server.rooms = append(server.rooms, room)
	server.mutex.Unlock()

	writeJSON(writer, http.StatusCreated, map[string]any{"room": room})
}

func (server *Server) handleUpdateRoom(writer http.ResponseWriter, request *http.Request) {
	var input stubRoom
	if !decodeJSON(writer, request, &input) {
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	roomID := chi.URLParam(request, "roomID")
	for index := range server.rooms {
		if server.rooms[index].ID != roomID {
			continue
		}
		input.ID = roomID
		if input.Status == "" {
			input.Status = server.rooms[index].Status
		}
		server.rooms[index] = input
		writeJSON(writer, http.StatusOK, map[string]any{"room": input})
		return
	}
	writeNotFound(writer, "Room not found")
}

func (server *Server) handleUpdateRoomStatus(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if !decodeJSON(writer, request, &payload) {
		return
	}
	if payload.Status == "" {
		writeBadRequest(writer, "status is required")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	roomID := chi.URLParam(request, "roomID")
	for index := range server.rooms {
		if server.rooms[index].ID == roomID {
			server.rooms[index].Status = payload.Status
			writeJSON(writer, http.StatusOK, map[string]any{"room": server.rooms[index]})
			return
		}
	}
	writeNotFound(writer, "Room not found")
}

func (server *Server) handleDeleteRoom(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	roomID := chi.URLParam(request, "roomID")
	for index := range server.rooms {
		if server.rooms[index].ID == roomID {
			server.rooms = append(server.rooms[:index], server.rooms[index+1:]...)
			writer.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeNotFound(writer, "Room not found")
}

func (server *Server) handleDeleteRoomImage(writer http.ResponseWriter, request *http.Request) {
	imageIndex, err := strconv.Atoi(chi.URLParam(request, "imageIndex"))
	if err != nil || imageIndex < 0 {
		writeBadRequest(writer, "imageIndex must be a non-negative integer")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	roomID := chi.URLParam(request, "roomID")
	for index := range server.rooms {
		if server.rooms[index].ID != roomID {
			continue
		}
		images := server.rooms[index].Images
		if imageIndex >= len(images) {
			writeNotFound(writer, "Image not found")
			return
		}
		server.rooms[index].Images = append(images[:imageIndex], images[imageIndex+1:]...)
		writeJSON(writer, http.StatusOK, map[string]any{"room": server.rooms[index]})
		return
	}
	writeNotFound(writer, "Room not found")
}

// # Bookings

func (server *Server) handleListMyBookings(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	mine := make([]stubBooking, 0)
	for _, booking := range server.bookings {
		if booking.UserID == claims.UserID {
			mine = append(mine, booking)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"bookings": mine})
}

func (server *Server) handleGetBooking(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	bookingID := chi.URLParam(request, "bookingID")
	for _, booking := range server.bookings {
		if booking.ID == bookingID && booking.UserID == claims.UserID {
			writeJSON(writer, http.StatusOK, map[string]any{"booking": booking})
			return
		}
	}
	writeNotFound(writer, "Booking not found")
}

func (server *Server) handleCreateBooking(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	var input struct {
		RoomID          string      `json:"roomId"`
		CheckInDate     string      `json:"checkInDate"`
		CheckOutDate    string      `json:"checkOutDate"`
		NumberOfGuests  int         `json:"numberOfGuests"`
		Guests          []stubGuest `json:"guests"`
		SpecialRequests string      `json:"specialRequests"`
	}
	if !decodeJSON(writer, request, &input) {
		return
	}

	checkIn, errIn := time.Parse("2006-01-02", input.CheckInDate)
	checkOut, errOut := time.Parse("2006-01-02", input.CheckOutDate)
	if errIn != nil || errOut != nil || !checkOut.After(checkIn) {
		writeBadRequest(writer, "checkOutDate must be after checkInDate")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	var room *stubRoom
	for index := range server.rooms {
		if server.rooms[index].ID == input.RoomID {
			room = &server.rooms[index]
			break
		}
	}
	if room == nil {
		writeNotFound(writer, "Room not found")
		return
	}
	if room.Status != "available" {
		writeConflict(writer, "Room is not available")
		return
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	booking := stubBooking{
		ID:              server.newID("bkg"),
		UserID:          claims.UserID,
		RoomID:          room.ID,
		CheckInDate:     input.CheckInDate,
		CheckOutDate:    input.CheckOutDate,
		NumberOfGuests:  input.NumberOfGuests,
		Guests:          input.Guests,
		TotalAmount:     float64(nights) * room.Price,
		Status:          "pending",
		PaymentStatus:   "pending",
		SpecialRequests: input.SpecialRequests,
	}
	server.bookings = append(server.bookings, booking)

	writeJSON(writer, http.StatusCreated, map[string]any{"booking": booking})
}

func (server *Server) handleCancelBooking(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	bookingID := chi.URLParam(request, "bookingID")
	for index := range server.bookings {
		booking := &server.bookings[index]
		if booking.ID != bookingID || booking.UserID != claims.UserID {
			continue
		}
		if booking.Status == "completed" || booking.Status == "cancelled" {
			writeConflict(writer, "Booking can no longer be cancelled")
			return
		}
		booking.Status = "cancelled"
		writeJSON(writer, http.StatusOK, map[string]any{"booking": booking})
		return
	}
	writeNotFound(writer, "Booking not found")
}

func (server *Server) handleAdminListBookings(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	status := request.URL.Query().Get("status")
	filtered := make([]stubBooking, 0, len(server.bookings))
	for _, booking := range server.bookings {
		if status == "" || booking.Status == status {
			filtered = append(filtered, booking)
		}
	}

	writeJSON(writer, http.StatusOK, map[string]any{
		"bookings": filtered,
		"pagination": map[string]int{
			"page": 1, "limit": len(filtered), "totalPages": 1, "totalBookings": len(filtered),
		},
	})
}

// transitionBooking applies a staff decision to a pending or confirmed booking.
func (server *Server) transitionBooking(writer http.ResponseWriter, request *http.Request, fromStatuses []string, toStatus string) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	bookingID := chi.URLParam(request, "bookingID")
	for index := range server.bookings {
		booking := &server.bookings[index]
		if booking.ID != bookingID {
			continue
		}
		allowed := false
		for _, from := range fromStatuses {
			if booking.Status == from {
				allowed = true
				break
			}
		}
		if !allowed {
			writeConflict(writer, "Booking is not in a transitionable state")
			return
		}
		booking.Status = toStatus
		writeJSON(writer, http.StatusOK, map[string]any{"booking": booking})
		return
	}
	writeNotFound(writer, "Booking not found")
}

func (server *Server) handleAcceptBooking(writer http.ResponseWriter, request *http.Request) {
	server.transitionBooking(writer, request, []string{"pending"}, "confirmed")
}

func (server *Server) handleRejectBooking(writer http.ResponseWriter, request *http.Request) {
	server.transitionBooking(writer, request, []string{"pending"}, "cancelled")
}

func (server *Server) handleCompleteBooking(writer http.ResponseWriter, request *http.Request) {
	server.transitionBooking(writer, request, []string{"confirmed"}, "completed")
}
