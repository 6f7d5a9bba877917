// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

// Package gallery exposes the about-page image gallery.
package gallery

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
	"github.com/harborview/concierge/pkg/query"
)

// # Types

// Image is one gallery image as the backend reports it.
type Image struct {
	Filename      string `json:"filename"`
	URL           string `json:"url"`
	Category      string `json:"category"`
	Size          int64  `json:"size"`
	UploadedAt    string `json:"uploadedAt"`
	SizeFormatted string `json:"sizeFormatted"`
}

// Gallery image categories.
const (
	CategoryHotel     = "hotel"
	CategoryTeam      = "team"
	CategoryAmenities = "amenities"
)

type listResponse struct {
	Images []Image `json:"images"`
	Count  int     `json:"count"`
}

// # Service

// Service is the typed client for the gallery endpoint.
type Service struct {
	client *transport.Client
}

// NewService constructs a gallery [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns the gallery images, optionally filtered to one category.
func (service *Service) List(context stdctx.Context, category string) ([]Image, error) {
	values := query.New().Str("category", category).Build()

	var response listResponse
	if err := service.client.Get(context, "/about-images/list", values, &response); err != nil {
		return nil, fmt.Errorf("gallery_list_failed: %w", err)
	}
	return response.Images, nil
}
