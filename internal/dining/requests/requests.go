// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package requests exposes custom food requests.

A custom request is an off-menu dish a guest asks the kitchen to prepare. It
moves pending → approved (with a final price) or rejected, then completed.
Guest endpoints live under /custom-food-requests, staff review under
/custom-food-requests/admin.
*/
package requests

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// Requester is the embedded guest summary on a request record.
type Requester struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Request is a custom food request as the backend reports it.
type Request struct {
	ID                  string    `json:"_id"`
	Requester           Requester `json:"userId"`
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
	ApprovedDate        string    `json:"approvedDate,omitempty"`
	CompletedDate       string    `json:"completedDate,omitempty"`
	CreatedAt           string    `json:"createdAt,omitempty"`
	UpdatedAt           string    `json:"updatedAt,omitempty"`
}

// Request status values.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// CreateInput carries the fields for a new custom request.
type CreateInput struct {
	RequestTitle        string   `json:"requestTitle"`
	Description         string   `json:"description"`
	PreferredDate       string   `json:"preferredDate"`
	PreferredTime       string   `json:"preferredTime,omitempty"`
	GuestCount          int      `json:"guestCount"`
	EstimatedPrice      float64  `json:"estimatedPrice,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// AdminFilters narrows the staff review listing.
type AdminFilters struct {
	Status string
	Page   int
	Limit  int
}

// Stats summarizes request volume for the staff dashboard.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
}

// # Wire Envelopes

type listResponse struct {
	Requests []Request `json:"requests"`
}

type itemResponse struct {
	Request *Request `json:"request"`
}

// # Service

// Service is the typed client for the custom request endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs a custom request [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Create submits a new custom food request for staff review.
func (service *Service) Create(context stdctx.Context, input CreateInput) (*Request, error) {
	var response itemResponse
	if err := service.client.Post(context, "/custom-food-requests", input, &response); err != nil {
		return nil, fmt.Errorf("requests_create_failed: %w", err)
	}
	return response.Request, nil
}

// ListMine returns the guest's own requests, optionally filtered by status.
func (service *Service) ListMine(context stdctx.Context, status string) ([]Request, error) {
	values := query.New().Str("status", status).Build()

	var response listResponse
	if err := service.client.Get(context, "/custom-food-requests/user", values, &response); err != nil {
		return nil, fmt.Errorf("requests_list_failed: %w", err)
	}
	return response.Requests, nil
}

// Cancel withdraws a pending request.
func (service *Service) Cancel(context stdctx.Context, requestID string) error {
	if err := service.client.Post(context, "/custom-food-requests/"+requestID+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("requests_cancel_failed: %w", err)
	}
	return nil
}

// # Admin Operations

// AdminList returns a filtered page of all requests for staff review.
func (service *Service) AdminList(context stdctx.Context, filters AdminFilters) ([]Request, error) {
	values := query.New().
		Str("status", filters.Status).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Build()

	var response listResponse
	if err := service.client.Get(context, "/custom-food-requests/admin/all", values, &response); err != nil {
		return nil, fmt.Errorf("requests_admin_list_failed: %w", err)
	}
	return response.Requests, nil
}

// Approve accepts a request, fixing its final price and replying to the guest.
func (service *Service) Approve(context stdctx.Context, requestID string, finalPrice float64, response string, notes string) error {
	payload := struct {
		FinalPrice    float64 `json:"finalPrice"`
		AdminResponse string  `json:"adminResponse"`
		AdminNotes    string  `json:"adminNotes,omitempty"`
	}{FinalPrice: finalPrice, AdminResponse: response, AdminNotes: notes}

	if err := service.client.Post(context, "/custom-food-requests/admin/"+requestID+"/approve", payload, nil); err != nil {
		return fmt.Errorf("requests_approve_failed: %w", err)
	}
	return nil
}

// Reject declines a request with a reply to the guest.
func (service *Service) Reject(context stdctx.Context, requestID string, response string, notes string) error {
	payload := struct {
		AdminResponse string `json:"adminResponse"`
		AdminNotes    string `json:"adminNotes,omitempty"`
	}{AdminResponse: response, AdminNotes: notes}

	if err := service.client.Post(context, "/custom-food-requests/admin/"+requestID+"/reject", payload, nil); err != nil {
		return fmt.Errorf("requests_reject_failed: %w", err)
	}
	return nil
}

// Complete marks an approved request as served.
func (service *Service) Complete(context stdctx.Context, requestID string) error {
	if err := service.client.Post(context, "/custom-food-requests/admin/"+requestID+"/complete", nil, nil); err != nil {
		return fmt.Errorf("requests_complete_failed: %w", err)
	}
	return nil
}

// Stats returns request volume counters for the staff dashboard.
func (service *Service) Stats(context stdctx.Context) (*Stats, error) {
	var stats Stats
	if err := service.client.Get(context, "/custom-food-requests/admin/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("requests_stats_failed: %w", err)
	}
	return &stats, nil
}
