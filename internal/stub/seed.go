// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	"fmt"
	"time"
)

// # State Types
//
// These mirror the wire shapes the client decodes. They are deliberately
// separate types; the stub models the backend, not the client.

type stubUser struct {
	ID              string `json:"_id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone,omitempty"`
	Role            string `json:"role"`
	IsActive        bool   `json:"isActive"`
	AuthProvider    string `json:"authProvider"`
	ProfilePicture  string `json:"profilePicture,omitempty"`
	IsPhoneVerified bool   `json:"isPhoneVerified"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

type stubRoom struct {
	ID          string   `json:"_id"`
	RoomNumber  string   `json:"roomNumber"`
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities,omitempty"`
}

type stubMenuItem struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Available   bool    `json:"available"`
	Image       string  `json:"image,omitempty"`
}

type stubCar struct {
	ID           string   `json:"_id"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Type         string   `json:"type"`
	Year         int      `json:"year"`
	Seats        int      `json:"seats"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuelType"`
	RentalPrice  float64  `json:"rentalPrice"`
	Available    bool     `json:"available"`
	Images       []string `json:"images,omitempty"`
	Features     []string `json:"features,omitempty"`
}

type stubGuest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

type stubBooking struct {
	ID              string      `json:"_id"`
	UserID          string      `json:"userId"`
	RoomID          string      `json:"roomId"`
	CheckInDate     string      `json:"checkInDate"`
	CheckOutDate    string      `json:"checkOutDate"`
	NumberOfGuests  int         `json:"numberOfGuests"`
	Guests          []stubGuest `json:"guests"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	SpecialRequests string      `json:"specialRequests,omitempty"`
}

type stubOrderItem struct {
	MenuItemID          string  `json:"menuItemId"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

type stubOrder struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	Items           []stubOrderItem `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          string          `json:"status"`
	OrderType       string          `json:"orderType"`
	TableNumber     string          `json:"tableNumber,omitempty"`
	RoomNumber      string          `json:"roomNumber,omitempty"`
	EstimatedTime   int             `json:"estimatedTime,omitempty"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
	CreatedAt       string          `json:"createdAt"`
}

type stubRequest struct {
	ID                  string    `json:"_id"`
	Requester           *stubUser `json:"userId"`
	RequestTitle        string    `json:"requestTitle"`
	Description         string    `json:"description"`
	PreferredDate       string    `json:"preferredDate"`
	PreferredTime       string    `json:"preferredTime"`
	GuestCount          int       `json:"guestCount"`
	EstimatedPrice      float64   `json:"estimatedPrice,omitempty"`
	DietaryRestrictions []string  `json:"dietaryRestrictions"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	Status              string    `json:"status"`
	AdminNotes          string    `json:"adminNotes,omitempty"`
	AdminResponse       string    `json:"adminResponse,omitempty"`
	FinalPrice          float64   `json:"finalPrice,omitempty"`
	CreatedAt           string    `json:"createdAt"`
	UpdatedAt           string    `json:"updatedAt"`
}

type stubServiceItem struct {
	Type         string  `json:"type"`
	ServiceID    string  `json:"serviceId"`
	ServiceModel string  `json:"serviceModel"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	AddedAt      string  `json:"addedAt"`
}

type stubCheckoutSession struct {
	ID             string            `json:"_id"`
	UserID         string            `json:"userId"`
	CheckInDate    string            `json:"checkInDate"`
	CheckOutDate   string            `json:"checkOutDate"`
	NumberOfNights int               `json:"numberOfNights"`
	Services       []stubServiceItem `json:"services"`
	Subtotal       float64           `json:"subtotal"`
	Taxes          float64           `json:"taxes"`
	TotalAmount    float64           `json:"totalAmount"`
	Status         string            `json:"status"`
	PaymentStatus  string            `json:"paymentStatus"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

type stubRental struct {
	ID              string  `json:"_id"`
	UserID          string  `json:"userId"`
	CarID           string  `json:"carId"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	PickupLocation  string  `json:"pickupLocation,omitempty"`
	DropoffLocation string  `json:"dropoffLocation,omitempty"`
	Status          string  `json:"status"`
	TotalAmount     float64 `json:"totalAmount"`
}

type stubSettings struct {
	Brand struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"brand"`
	Socials struct {
		Facebook  string `json:"facebook"`
		Twitter   string `json:"twitter"`
		Instagram string `json:"instagram"`
	} `json:"socials"`
	Contact struct {
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
	} `json:"contact"`
}

type stubBanner struct {
	ID        string `json:"_id"`
	Title     string `json:"title,omitempty"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
}

type stubImage struct {
	Filename      string `json:"filename"`
	URL           string `json:"url"`
	Category      string `json:"category"`
	Size          int64  `json:"size"`
	UploadedAt    string `json:"uploadedAt"`
	SizeFormatted string `json:"sizeFormatted"`
}

// # Seed Data

// newID hands out sequential object identifiers. Caller holds the mutex.
func (server *Server) newID(prefix string) string {
	id := fmt.Sprintf("%s-%04d", prefix, server.nextID)
	server.nextID++
	return id
}

// seed loads the development catalogue.
func (server *Server) seed() {
	now := time.Now().UTC().Format(time.RFC3339)

	admin := &stubUser{
		ID:           server.newID("usr"),
		Email:        "admin@harborview.test",
		FirstName:    "Ava",
		LastName:     "Sterling",
		Role:         "admin",
		IsActive:     true,
		AuthProvider: "google",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	guest := &stubUser{
		ID:           server.newID("usr"),
		Email:        "guest@harborview.test",
		FirstName:    "Noor",
		LastName:     "Haddad",
		Role:         "user",
		IsActive:     true,
		AuthProvider: "google",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	server.users[admin.Email] = admin
	server.users[guest.Email] = guest

	server.rooms = []stubRoom{
		{ID: server.newID("room"), RoomNumber: "101", Type: "standard", Price: 120, Status: "available", Capacity: 2, Description: "Garden view, queen bed."},
		{ID: server.newID("room"), RoomNumber: "204", Type: "deluxe", Price: 210, Status: "available", Capacity: 3, Amenities: []string{"balcony", "minibar"}, Description: "Harbor view, king bed."},
		{ID: server.newID("room"), RoomNumber: "501", Type: "suite", Price: 420, Status: "maintenance", Capacity: 4, Amenities: []string{"balcony", "kitchenette", "bathtub"}, Description: "Corner suite with panoramic windows."},
	}

	server.menu = []stubMenuItem{
		{ID: server.newID("dish"), Name: "Seared Salmon", Price: 28.50, Category: "mains", Available: true},
		{ID: server.newID("dish"), Name: "Harborview Burger", Price: 19.00, Category: "mains", Available: true},
		{ID: server.newID("dish"), Name: "Citrus Cheesecake", Price: 11.00, Category: "desserts", Available: true},
		{ID: server.newID("dish"), Name: "Oyster Platter", Price: 34.00, Category: "starters", Available: false},
	}

	server.cars = []stubCar{
		{ID: server.newID("car"), Brand: "Toyota", Model: "Corolla", Type: "sedan", Year: 2024, Seats: 5, Transmission: "automatic", FuelType: "hybrid", RentalPrice: 55, Available: true},
		{ID: server.newID("car"), Brand: "Land Rover", Model: "Defender", Type: "suv", Year: 2023, Seats: 7, Transmission: "automatic", FuelType: "diesel", RentalPrice: 140, Available: true, Features: []string{"roof rack", "tow hitch"}},
	}

	server.settings.Brand.Name = "Harborview Hotel"
	server.settings.Brand.Description = "Boutique waterfront hotel."
	server.settings.Contact.Address = "1 Quay Street"
	server.settings.Contact.Phone = "+1 555 0100"
	server.settings.Contact.Email = "hello@harborview.test"

	server.images = []stubImage{
		{Filename: "lobby.jpg", URL: "/static/about/lobby.jpg", Category: "hotel", Size: 482113, UploadedAt: now, SizeFormatted: "471 KB"},
		{Filename: "team.jpg", URL: "/static/about/team.jpg", Category: "team", Size: 301223, UploadedAt: now, SizeFormatted: "294 KB"},
	}

	server.banners = []stubBanner{
		{ID: server.newID("bnr"), Title: "Welcome to Harborview", ImageURL: "/static/banners/marina-dawn.jpg", CreatedAt: now},
		{ID: server.newID("bnr"), Title: "Summer on the Quay", ImageURL: "/static/banners/terrace-sunset.jpg", CreatedAt: now},
	}
}
