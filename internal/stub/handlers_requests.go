// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package stub

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// # Custom Food Requests

func (server *Server) handleCreateRequest(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	var input struct {
		RequestTitle        string   `json:"requestTitle"`
		Description         string   `json:"description"`
		PreferredDate       string   `json:"preferredDate"`
		PreferredTime       string   `json:"preferredTime"`
		GuestCount          int      `json:"guestCount"`
		EstimatedPrice      float64  `json:"estimatedPrice"`
		DietaryRestrictions []string `json:"dietaryRestrictions"`
		SpecialInstructions string   `json:"specialInstructions"`
	}
	if !decodeJSON(writer, request, &input) {
		return
	}
	if input.RequestTitle == "" || input.Description == "" {
		writeBadRequest(writer, "requestTitle and description are required")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	preferredTime := input.PreferredTime
	if preferredTime == "" {
		preferredTime = "any"
	}
	foodRequest := stubRequest{
		ID:                  server.newID("req"),
		Requester:           server.userByID(claims.UserID),
		RequestTitle:        input.RequestTitle,
		Description:         input.Description,
		PreferredDate:       input.PreferredDate,
		PreferredTime:       preferredTime,
		GuestCount:          input.GuestCount,
		EstimatedPrice:      input.EstimatedPrice,
		DietaryRestrictions: input.DietaryRestrictions,
		SpecialInstructions: input.SpecialInstructions,
		Status:              "pending",
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	server.requests = append(server.requests, foodRequest)

	writeJSON(writer, http.StatusCreated, map[string]any{"request": foodRequest})
}

func (server *Server) handleListMyRequests(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	status := request.URL.Query().Get("status")
	mine := make([]stubRequest, 0)
	for _, foodRequest := range server.requests {
		if foodRequest.Requester == nil || foodRequest.Requester.ID != claims.UserID {
			continue
		}
		if status != "" && foodRequest.Status != status {
			continue
		}
		mine = append(mine, foodRequest)
	}
	writeJSON(writer, http.StatusOK, map[string]any{"requests": mine})
}

func (server *Server) handleCancelRequest(writer http.ResponseWriter, request *http.Request) {
	claims := claimsFrom(request.Context())

	server.mutex.Lock()
	defer server.mutex.Unlock()

	requestID := chi.URLParam(request, "requestID")
	for index := range server.requests {
		foodRequest := &server.requests[index]
		if foodRequest.ID != requestID || foodRequest.Requester == nil || foodRequest.Requester.ID != claims.UserID {
			continue
		}
		if foodRequest.Status != "pending" {
			writeConflict(writer, "Only pending requests can be cancelled")
			return
		}
		foodRequest.Status = "cancelled"
		foodRequest.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		writeJSON(writer, http.StatusOK, map[string]any{"request": foodRequest})
		return
	}
	writeNotFound(writer, "Request not found")
}

func (server *Server) handleAdminListRequests(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	status := request.URL.Query().Get("status")
	filtered := make([]stubRequest, 0, len(server.requests))
	for _, foodRequest := range server.requests {
		if status == "" || foodRequest.Status == status {
			filtered = append(filtered, foodRequest)
		}
	}
	writeJSON(writer, http.StatusOK, map[string]any{"requests": filtered})
}

func (server *Server) handleApproveRequest(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		FinalPrice    float64 `json:"finalPrice"`
		AdminResponse string  `json:"adminResponse"`
		AdminNotes    string  `json:"adminNotes"`
	}
	if !decodeJSON(writer, request, &payload) {
		return
	}
	if payload.FinalPrice <= 0 || payload.AdminResponse == "" {
		writeBadRequest(writer, "finalPrice and adminResponse are required")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	requestID := chi.URLParam(request, "requestID")
	for index := range server.requests {
		foodRequest := &server.requests[index]
		if foodRequest.ID != requestID {
			continue
		}
		if foodRequest.Status != "pending" {
			writeConflict(writer, "Only pending requests can be approved")
			return
		}
		foodRequest.Status = "approved"
		foodRequest.FinalPrice = payload.FinalPrice
		foodRequest.AdminResponse = payload.AdminResponse
		foodRequest.AdminNotes = payload.AdminNotes
		foodRequest.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		writeJSON(writer, http.StatusOK, map[string]any{"request": foodRequest})
		return
	}
	writeNotFound(writer, "Request not found")
}

func (server *Server) handleRejectRequest(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		AdminResponse string `json:"adminResponse"`
		AdminNotes    string `json:"adminNotes"`
	}
	if !decodeJSON(writer, request, &payload) {
		return
	}
	if payload.AdminResponse == "" {
		writeBadRequest(writer, "adminResponse is required")
		return
	}

	server.mutex.Lock()
	defer server.mutex.Unlock()

	requestID := chi.URLParam(request, "requestID")
	for index := range server.requests {
		foodRequest := &server.requests[index]
		if foodRequest.ID != requestID {
			continue
		}
		if foodRequest.Status != "pending" {
			writeConflict(writer, "Only pending requests can be rejected")
			return
		}
		foodRequest.Status = "rejected"
		foodRequest.AdminResponse = payload.AdminResponse
		foodRequest.AdminNotes = payload.AdminNotes
		foodRequest.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		writeJSON(writer, http.StatusOK, map[string]any{"request": foodRequest})
		return
	}
	writeNotFound(writer, "Request not found")
}

func (server *Server) handleCompleteRequest(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	requestID := chi.URLParam(request, "requestID")
	for index := range server.requests {
		foodRequest := &server.requests[index]
		if foodRequest.ID != requestID {
			continue
		}
		if foodRequest.Status != "approved" {
			writeConflict(writer, "Only approved requests can be completed")
			return
		}
		foodRequest.Status = "completed"
		foodRequest.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		writeJSON(writer, http.StatusOK, map[string]any{"request": foodRequest})
		return
	}
	writeNotFound(writer, "Request not found")
}

func (server *Server) handleRequestStats(writer http.ResponseWriter, request *http.Request) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	stats := map[string]int{"total": len(server.requests), "pending": 0, "approved": 0, "rejected": 0, "completed": 0}
	for _, foodRequest := range server.requests {
		if _, tracked := stats[foodRequest.Status]; tracked {
			stats[foodRequest.Status]++
		}
	}
	writeJSON(writer, http.StatusOK, stats)
}
