// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package cars exposes the rental car fleet.

Guests browse the fleet and request rentals through /cars; fleet management
reuses the same resource paths with an admin session.
*/
package cars

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// Car is one vehicle in the rental fleet.
type Car struct {
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

// Rental is a guest's rental request as the backend reports it.
type Rental struct {
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

// Rental status values.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Filters narrows the fleet listing.
type Filters struct {
	Type     string
	MinPrice float64
	MaxPrice float64
}

// CarInput carries the writable fields for create and update.
type CarInput struct {
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

// RentalInput carries the fields for a new rental request.
type RentalInput struct {
	CarID             string `json:"carId"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	DriverLicense     string `json:"driverLicense"`
	AdditionalDrivers int    `json:"additionalDrivers,omitempty"`
	Insurance         bool   `json:"insurance,omitempty"`
}

// # Wire Envelopes

type listResponse struct {
	Cars []Car `json:"cars"`
}

type carResponse struct {
	Car *Car `json:"car"`
}

type rentalsResponse struct {
	Rentals []Rental `json:"rentals"`
}

type rentalResponse struct {
	Rental *Rental `json:"rental"`
}

// # Service

// Service is the typed client for the fleet endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs a fleet [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns the fleet, optionally filtered by type and price band.
func (service *Service) List(context stdctx.Context, filters Filters) ([]Car, error) {
	values := query.New().
		Str("type", filters.Type).
		Float("minPrice", filters.MinPrice).
		Float("maxPrice", filters.MaxPrice).
		Build()

	var response listResponse
	if err := service.client.Get(context, "/cars", values, &response); err != nil {
		return nil, fmt.Errorf("cars_list_failed: %w", err)
	}
	return response.Cars, nil
}

// ListMyRentals returns the signed-in guest's rental requests.
func (service *Service) ListMyRentals(context stdctx.Context) ([]Rental, error) {
	var response rentalsResponse
	if err := service.client.Get(context, "/cars/rentals", nil, &response); err != nil {
		return nil, fmt.Errorf("cars_list_rentals_failed: %w", err)
	}
	return response.Rentals, nil
}

// CreateRental requests a rental for a date range.
func (service *Service) CreateRental(context stdctx.Context, input RentalInput) (*Rental, error) {
	var response rentalResponse
	if err := service.client.Post(context, "/cars/rentals", input, &response); err != nil {
		return nil, fmt.Errorf("cars_create_rental_failed: %w", err)
	}
	return response.Rental, nil
}

// # Admin Operations

// Create adds a vehicle to the fleet.
func (service *Service) Create(context stdctx.Context, input CarInput) (*Car, error) {
	var response carResponse
	if err := service.client.Post(context, "/cars", input, &response); err != nil {
		return nil, fmt.Errorf("cars_create_failed: %w", err)
	}
	return response.Car, nil
}

// Update replaces a vehicle's writable fields.
func (service *Service) Update(context stdctx.Context, carID string, input CarInput) (*Car, error) {
	var response carResponse
	if err := service.client.Put(context, "/cars/"+carID, input, &response); err != nil {
		return nil, fmt.Errorf("cars_update_failed: %w", err)
	}
	return response.Car, nil
}

// UpdateStatus moves a vehicle in or out of service.
func (service *Service) UpdateStatus(context stdctx.Context, carID string, status string) error {
	payload := struct {
		Status string `json:"status"`
	}{Status: status}

	if err := service.client.Put(context, "/cars/"+carID, payload, nil); err != nil {
		return fmt.Errorf("cars_update_status_failed: %w", err)
	}
	return nil
}

// Delete removes a vehicle from the fleet.
func (service *Service) Delete(context stdctx.Context, carID string) error {
	if err := service.client.Delete(context, "/cars/"+carID, nil); err != nil {
		return fmt.Errorf("cars_delete_failed: %w", err)
	}
	return nil
}
