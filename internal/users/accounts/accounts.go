// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package accounts exposes the back-office user directory and the
property-wide dashboard counters.

Every operation requires an admin session; guests manage their own profile
through the session and auth packages instead.
*/
package accounts

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/internal/users/session"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// Filters narrows the user directory listing.
type Filters struct {
	Role     string
	IsActive *bool
	Page     int
	Limit    int
}

// UpdateInput carries the account fields staff may change.
type UpdateInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// Pagination echoes the backend's paging envelope.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalUsers int `json:"totalUsers"`
}

// Page is one page of the user directory.
type Page struct {
	Users      []session.User `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

type itemResponse struct {
	User *session.User `json:"user"`
}

// # Service

// Service is the typed client for the user directory endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs an accounts [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns a filtered, paginated page of the user directory.
func (service *Service) List(context stdctx.Context, filters Filters) (*Page, error) {
	values := query.New().
		Str("role", filters.Role).
		Bool("isActive", filters.IsActive).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Build()

	var page Page
	if err := service.client.Get(context, "/users", values, &page); err != nil {
		return nil, fmt.Errorf("accounts_list_failed: %w", err)
	}
	return &page, nil
}

// Update changes an account's staff-editable fields.
func (service *Service) Update(context stdctx.Context, userID string, input UpdateInput) (*session.User, error) {
	var response itemResponse
	if err := service.client.Put(context, "/users/"+userID, input, &response); err != nil {
		return nil, fmt.Errorf("accounts_update_failed: %w", err)
	}
	return response.User, nil
}

// DashboardStats aggregates counters across the whole property for the
// back-office landing view.
type DashboardStats struct {
	TotalUsers      int `json:"totalUsers"`
	ActiveUsers     int `json:"activeUsers"`
	TotalRooms      int `json:"totalRooms"`
	AvailableRooms  int `json:"availableRooms"`
	TotalBookings   int `json:"totalBookings"`
	PendingBookings int `json:"pendingBookings"`
	TotalOrders     int `json:"totalOrders"`
	PendingOrders   int `json:"pendingOrders"`
}

type dashboardResponse struct {
	Stats DashboardStats `json:"stats"`
}

// Dashboard returns the property-wide counters.
func (service *Service) Dashboard(context stdctx.Context) (*DashboardStats, error) {
	var response dashboardResponse
	if err := service.client.Get(context, "/admin/dashboard", nil, &response); err != nil {
		return nil, fmt.Errorf("accounts_dashboard_failed: %w", err)
	}
	return &response.Stats, nil
}
