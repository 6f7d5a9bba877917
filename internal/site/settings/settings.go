// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

// Package settings exposes the public site settings document.
package settings

import (
	stdctx "context"
	"fmt"

	"github.com/harborview/concierge/internal/platform/transport"
)

// # Types

// Brand names the property.
type Brand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Socials lists the property's social profiles.
type Socials struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
}

// Contact holds the property's public contact details.
type Contact struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Settings is the site settings document as the backend reports it.
type Settings struct {
	Brand   Brand   `json:"brand"`
	Socials Socials `json:"socials"`
	Contact Contact `json:"contact"`
}

type settingsResponse struct {
	Data *Settings `json:"data"`
}

// # Service

// Service is the typed client for the settings endpoint.
type Service struct {
	client *transport.Client
}

// NewService constructs a settings [Service].
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Get returns the site settings document.
func (service *Service) Get(context stdctx.Context) (*Settings, error) {
	var response settingsResponse
	if err := service.client.Get(context, "/settings", nil, &response); err != nil {
		return nil, fmt.Errorf("settings_get_failed: %w", err)
	}
	return response.Data, nil
}

// Update replaces the site settings document. Admin only.
func (service *Service) Update(context stdctx.Context, updated Settings) error {
	if err := service.client.Put(context, "/settings", updated, nil); err != nil {
		return fmt.Errorf("settings_update_failed: %w", err)
	}
	return nil
}
