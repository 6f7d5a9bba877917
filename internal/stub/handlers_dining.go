// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// # Menu

func (server *Server) handleListMenu(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	category := request.URL.Query().Get("category")
	visible := make([]stubMenuItem, 0, len(server.menu))
	for _, item := range server.menu {
		if !item.Available {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		visible = append(visible, item)
	}
	writeJSON(writer, http.StatusOK, map[string]any{"menu": visible})
}

func (server *Server) handleAdminListMenu(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	category := request.URL.Query().Get("category")
	filtered := make([]stubMenuItem, 0, len(server.menu))
	for _, item := range server.menu {
		if category != "" && item.Category != category {
			continue
		}
		filtered = append(filtered, item)
	}
	writeJSON(writer, http.StatusOK, map[string]any{"menu": filtered})
}

func (server *Server) handleCreateMenuItem(writer http.ResponseWriter, request *http.Request) {
	var item stubMenuItem
	if !decodeJSON(writer, request, &item) {
		return
	}
	if item.Name == "" || item.Price <= 0 || item.Category == "" {
		writeBadRequest(writer, "name, price and category are required")
		return
	}

	server.mutex.Lock()
	item.ID = server.newID("dish")
	server.menu = append(server.menu, item)
	server.mutex.Unlock()

	writeJSON(writer, http.StatusCreated, map[string]any{"item": item})
}

func (server *Server) handleUpdateMenuItem(writer http.ResponseWriter, request *http.Request) {
	var input stubMenuItem
	if !decodeJSON(writer, request, &input) {
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	itemID := chi.URLParam(request, "itemID")
	for index := range server.menu {
		if server.menu[index].ID == itemID {
			input.ID = itemID
			server.menu[index] = input
			writeJSON(writer, http.StatusOK, map[string]any{"item": input})
			return
		}
	}
	writeNotFound(writer, "Menu item not found")
}

func (server *Server) handleSetMenuAvailability(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if !decodeJSON(writer, request, &payload) {
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	itemID := chi.URLParam(request, "itemID")
	for index := range server.menu {
		if server.menu[index].ID == itemID {
			server.menu[index].Available = payload.IsAvailable
			writeJSON(writer, http.StatusOK, map[string]any{"item": server.menu[index]})
			return
		}
	}
	writeNotFound(writer, "Menu item not found")
}

func (server *Server) handleDeleteMenuItem(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	itemID := chi.URLParam(request, "itemID")
	for index := range server.menu {
		if server.menu[index].ID == itemID {
			server.menu = append(server.menu[:index], server.menu[index+1:]...)
			writer.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeNotFound(writer, "Menu item not found")
}

// # Food Orders

func (server *Server) handleListMyOrders(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	mine := make([]stubOrder, 0)
	for _, order := range server.orders {
		if order.UserID == claims.UserID {
			mine = append(mine, order)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"orders": mine})
}

func (server *Server) handleGetOrder(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	orderID := chi.URLParam(request, "orderID")
	for _, order := range server.orders {
		if order.ID == orderID && order.UserID == claims.UserID {
			writeJSON(writer, http.StatusOK, map[string]any{"order": order})
			return
		}
	}
	writeNotFound(writer, "Order not found")
}

/*
handleCreateOrder places a food order from submitted cart lines.

Prices come from the live menu, never from the client. Lines referencing
unknown or unavailable dishes fail the whole order; partial orders would be
worse to untangle at the kitchen pass than a clean resubmission.
*/
func (server *Server) handleCreateOrder(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	var input struct {
		Items []struct {
			MenuItemID          string `json:"menuItemId"`
			Quantity            int    `json:"quantity"`
			SpecialInstructions string `json:"specialInstructions"`
		} `json:"items"`
		OrderType       string `json:"orderType"`
		TableNumber     string `json:"tableNumber"`
		RoomNumber      string `json:"roomNumber"`
		SpecialRequests string `json:"specialRequests"`
		PaymentMethod   string `json:"paymentMethod"`
	}
	if !decodeJSON(writer, request, &input) {
		return
	}
	if len(input.Items) == 0 {
		writeBadRequest(writer, "items must not be empty")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	order := stubOrder{
		ID:              server.newID("ord"),
		UserID:          claims.UserID,
		Status:          "pending",
		OrderType:       input.OrderType,
		TableNumber:     input.TableNumber,
		RoomNumber:      input.RoomNumber,
		SpecialRequests: input.SpecialRequests,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	for _, line := range input.Items {
		var dish *stubMenuItem
		for index := range server.menu {
			if server.menu[index].ID == line.MenuItemID {
				dish = &server.menu[index]
				break
			}
		}
		if dish == nil || !dish.Available {
			writeBadRequest(writer, "Order references an unavailable menu item")
			return
		}
		quantity := line.Quantity
		if quantity < 1 {
			quantity = 1
		}
		order.Items = append(order.Items, stubOrderItem{
			MenuItemID:          dish.ID,
			Name:                dish.Name,
			Quantity:            quantity,
			Price:               dish.Price,
			SpecialInstructions: line.SpecialInstructions,
		})
		order.TotalAmount += dish.Price * float64(quantity)
	}

	server.orders = append(server.orders, order)

	writeJSON(writer, http.StatusCreated, map[string]any{"order": order})
}

func (server *Server) handleCancelOrder(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	orderID := chi.URLParam(request, "orderID")
	for index := range server.orders {
		order := &server.orders[index]
		if order.ID != orderID || order.UserID != claims.UserID {
			continue
		}
		if order.Status != "pending" && order.Status != "confirmed" {
			writeConflict(writer, "Order has entered preparation")
			return
		}
		order.Status = "cancelled"
		writeJSON(writer, http.StatusOK, map[string]any{"order": order})
		return
	}
	writeNotFound(writer, "Order not found")
}

func (server *Server) handleAdminListOrders(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	status := request.URL.Query().Get("status")
	filtered := make([]stubOrder, 0, len(server.orders))
	for _, order := range server.orders {
		if status == "" || order.Status == status {
			filtered = append(filtered, order)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"orders": filtered})
}

func (server *Server) handlePendingOrders(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	pending := make([]stubOrder, 0)
	for _, order := range server.orders {
		if order.Status == "pending" {
			pending = append(pending, order)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"orders": pending})
}

func (server *Server) handleUpdateOrderStatus(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Status        string `json:"status"`
		EstimatedTime int    `json:"estimatedTime"`
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

	orderID := chi.URLParam(request, "orderID")
	for index := range server.orders {
		if server.orders[index].ID == orderID {
			server.orders[index].Status = payload.Status
			if payload.EstimatedTime > 0 {
				server.orders[index].EstimatedTime = payload.EstimatedTime
			}
			writeJSON(writer, http.StatusOK, map[string]any{"order": server.orders[index]})
			return
		}
	}
	writeNotFound(writer, "Order not found")
}

func (server *Server) handleDeleteOrder(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	orderID := chi.URLParam(request, "orderID")
	for index := range server.orders {
		if server.orders[index].ID == orderID {
			server.orders = append(server.orders[:index], server.orders[index+1:]...)
			writer.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeNotFound(writer, "Order not found")
}

func (server *Server) handleOrderAnalytics(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	distribution := make(map[string]int)
	var revenue float64
	for _, order := range server.orders {
		distribution[order.Status]++
		if order.Status != "cancelled" {
			revenue += order.TotalAmount
		}
	}

	writeJSON(writer, http.StatusOK, map[string]any{
		"analytics": map[string]any{
			"totalOrders":        len(server.orders),
			"totalRevenue":       revenue,
			"statusDistribution": distribution,
		},
	})
}
