// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package orders exposes food orders.

Guests submit the contents of their cart as an order through /food-orders and
track it through the kitchen's status lifecycle. The kitchen side lives under
/food-orders/admin and requires an admin session.
*/
package orders

import (
	stdctx "context"
	"errors"
	"fmt"

	"github.com/harborview/concierge/internal/dining/cart"
	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// Item is one line of a placed order.
type Item struct {
	MenuItemID          string  `json:"menuItemId"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	Image               string  `json:"image,omitempty"`
}

// Order is a food order as the backend reports it.
type Order struct {
	ID                  string  `json:"_id"`
	UserID              string  `json:"userId"`
	Items               []Item  `json:"items"`
	TotalAmount         float64 `json:"totalAmount"`
	Status              string  `json:"status"`
	OrderType           string  `json:"orderType"`
	TableNumber         string  `json:"tableNumber,omitempty"`
	RoomNumber          string  `json:"roomNumber,omitempty"`
	EstimatedTime       int     `json:"estimatedTime,omitempty"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	CreatedAt           string  `json:"createdAt,omitempty"`
}

// Order status values through the kitchen lifecycle.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order type values.
const (
	TypeDineIn   = "dine-in"
	TypeTakeaway = "takeaway"
	TypeDelivery = "delivery"
)

// createItem is the order-line shape the backend accepts on submission.
type createItem struct {
	MenuItemID          string `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// CreateInput carries the fields for a new order.
type CreateInput struct {
	OrderType       string
	TableNumber     string
	RoomNumber      string
	SpecialRequests string
	PaymentMethod   string
}

// AdminFilters narrows the kitchen's order listing.
type AdminFilters struct {
	Status string
	Page   int
	Limit  int
}

// # Wire Envelopes

type listResponse struct {
	Orders []Order `json:"orders"`
}

type itemResponse struct {
	Order *Order `json:"order"`
}

type createRequest struct {
	Items           []createItem `json:"items"`
	OrderType       string       `json:"orderType"`
	TableNumber     string       `json:"tableNumber,omitempty"`
	RoomNumber      string       `json:"roomNumber,omitempty"`
	SpecialRequests string       `json:"specialRequests,omitempty"`
	PaymentMethod   string       `json:"paymentMethod"`
}

// # Service

// Service is the typed client for the food-order endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs an order [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// ListMine returns the signed-in guest's orders.
func (service *Service) ListMine(context stdctx.Context) ([]Order, error) {
	var response listResponse
	if err := service.client.Get(context, "/food-orders", nil, &response); err != nil {
		return nil, fmt.Errorf("orders_list_failed: %w", err)
	}
	return response.Orders, nil
}

// Get returns a single order by identifier.
func (service *Service) Get(context stdctx.Context, orderID string) (*Order, error) {
	var response itemResponse
	if err := service.client.Get(context, "/food-orders/"+orderID, nil, &response); err != nil {
		return nil, fmt.Errorf("orders_get_failed: %w", err)
	}
	return response.Order, nil
}

/*
Create submits the given cart lines as a food order.

Description: Only item identity, quantity and per-line instructions travel to
the backend. Prices are resolved server-side against the live menu, so a stale
cart can never fix the amount charged.

Parameters:
  - context: context.Context
  - lines: Cart lines to order, merged and sanitized by the cart store
  - input: Order type, location and payment details

Returns:
  - *Order: The placed order, pending kitchen confirmation
  - error: Empty cart or backend failures
*/
func (service *Service) Create(context stdctx.Context, lines []cart.Line, input CreateInput) (*Order, error) {

	if len(lines) == 0 {
		return nil, errors.New("orders_create_empty_cart")
	}

	request := createRequest{
		Items:           make([]createItem, 0, len(lines)),
		OrderType:       input.OrderType,
		TableNumber:     input.TableNumber,
		RoomNumber:      input.RoomNumber,
		SpecialRequests: input.SpecialRequests,
		PaymentMethod:   input.PaymentMethod,
	}
	for _, line := range lines {
		request.Items = append(request.Items, createItem{
			MenuItemID:          line.ItemID,
			Quantity:            line.Quantity,
			SpecialInstructions: line.Note,
		})
	}

	var response itemResponse
	if err := service.client.Post(context, "/food-orders", request, &response); err != nil {
		return nil, fmt.Errorf("orders_create_failed: %w", err)
	}
	return response.Order, nil
}

// Cancel cancels the guest's own order while the kitchen still allows it.
func (service *Service) Cancel(context stdctx.Context, orderID string) error {
	if err := service.client.Put(context, "/food-orders/"+orderID+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("orders_cancel_failed: %w", err)
	}
	return nil
}

// # Admin Operations

// AdminList returns a filtered page of all orders for the kitchen.
func (service *Service) AdminList(context stdctx.Context, filters AdminFilters) ([]Order, error) {
	values := query.New().
		Str("status", filters.Status).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Build()

	var response listResponse
	if err := service.client.Get(context, "/food-orders/admin/orders", values, &response); err != nil {
		return nil, fmt.Errorf("orders_admin_list_failed: %w", err)
	}
	return response.Orders, nil
}

// Pending returns the orders awaiting kitchen confirmation.
func (service *Service) Pending(context stdctx.Context) ([]Order, error) {
	var response listResponse
	if err := service.client.Get(context, "/food-orders/admin/orders/pending", nil, &response); err != nil {
		return nil, fmt.Errorf("orders_pending_failed: %w", err)
	}
	return response.Orders, nil
}

// UpdateStatus advances an order through the kitchen lifecycle.
func (service *Service) UpdateStatus(context stdctx.Context, orderID string, status string, estimatedTime int, notes string) error {
	payload := struct {
		Status        string `json:"status"`
		EstimatedTime int    `json:"estimatedTime,omitempty"`
		Notes         string `json:"notes,omitempty"`
	}{Status: status, EstimatedTime: estimatedTime, Notes: notes}

	if err := service.client.Put(context, "/food-orders/admin/orders/"+orderID+"/status", payload, nil); err != nil {
		return fmt.Errorf("orders_update_status_failed: %w", err)
	}
	return nil
}

// Delete removes an order record entirely.
func (service *Service) Delete(context stdctx.Context, orderID string) error {
	if err := service.client.Delete(context, "/food-orders/admin/orders/"+orderID, nil); err != nil {
		return fmt.Errorf("orders_delete_failed: %w", err)
	}
	return nil
}

// Analytics aggregates kitchen volume for the staff dashboard.
type Analytics struct {
	TotalOrders        int            `json:"totalOrders"`
	TotalRevenue       float64        `json:"totalRevenue"`
	StatusDistribution map[string]int `json:"statusDistribution"`
}

type analyticsResponse struct {
	Analytics Analytics `json:"analytics"`
}

// GetAnalytics returns order volume and revenue counters. Admin only.
func (service *Service) GetAnalytics(context stdctx.Context) (*Analytics, error) {
	var response analyticsResponse
	if err := service.client.Get(context, "/food-orders/admin/orders/analytics", nil, &response); err != nil {
		return nil, fmt.Errorf("orders_analytics_failed: %w", err)
	}
	return &response.Analytics, nil
}
