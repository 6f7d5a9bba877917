// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

// Package banners manages the landing-page hero carousel.
//
// Guests read the active banner list; the back office uploads and removes
// banners through the admin surface.
package banners

import (
	stdctx "context"
	"fmt"
	"time"

	"github.com/harborview/concierge/internal/platform/transport"
)

// # Types

// Banner is one hero carousel image as the backend reports it.
type Banner struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// UploadInput describes a new banner. ImageURL is required.
type UploadInput struct {
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl"`
}

type listResponse struct {
	Banners []Banner `json:"banners"`
}

type itemResponse struct {
	Banner Banner `json:"banner"`
}

// # Service

// Service is the typed client for the banner endpoints.
type Service struct {
	client *transport.Client
}

// NewService constructs a banner [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns the banners shown in the landing-page carousel.
func (service *Service) List(context stdctx.Context) ([]Banner, error) {
	var response listResponse
	if err := service.client.Get(context, "/banners", nil, &response); err != nil {
		return nil, fmt.Errorf("banners_list_failed: %w", err)
	}
	return response.Banners, nil
}

// Upload registers a new banner image. Admin only.
func (service *Service) Upload(context stdctx.Context, input UploadInput) (*Banner, error) {
	var response itemResponse
	if err := service.client.Post(context, "/admin/banners", input, &response); err != nil {
		return nil, fmt.Errorf("banners_upload_failed: %w", err)
	}
	return &response.Banner, nil
}

// Delete removes a banner from the carousel. Admin only.
func (service *Service) Delete(context stdctx.Context, bannerID string) error {
	if err := service.client.Delete(context, "/admin/banners/"+bannerID, nil); err != nil {
		return fmt.Errorf("banners_delete_failed: %w", err)
	}
	return nil
}
