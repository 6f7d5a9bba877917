// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (storage, transport) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the client is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Harborview Concierge client.
type Config struct {

	// Backend API settings
	APIBaseURL  string `env:"API_BASE_URL"  envDefault:"http://localhost:5001/api"`
	Environment string `env:"ENVIRONMENT"   envDefault:"development"`
	Debug       bool   `env:"DEBUG"         envDefault:"false"`

	// HTTPTimeout bounds every outbound request, including the one-shot
	// refresh-and-retry cycle. No per-operation deadline exists below this.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`

	// RequestsPerSecond throttles outbound calls so a misbehaving loop in the
	// presentation layer cannot hammer the backend.
	RequestsPerSecond float64 `env:"REQUESTS_PER_SECOND" envDefault:"10"`

	// Durable local storage (the browser-localStorage analogue).
	// StatePath selects the file backend; RedisURL, when set, overrides it.
	StatePath string `env:"STATE_PATH" envDefault:".concierge/state.json"`
	RedisURL  string `env:"REDIS_URL"`

	// Google sign-in (loopback authorization-code flow)
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	OAuthListenPort    int    `env:"OAUTH_LISTEN_PORT" envDefault:"8917"`

	// Development stub backend (cmd/stubapi)
	StubPort      string `env:"STUB_PORT"       envDefault:"5001"`
	StubJWTSecret string `env:"STUB_JWT_SECRET" envDefault:"stub-dev-secret"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// A trailing slash on the base URL would produce double-slash request paths.
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return cfg, nil
}

// IsDevelopment reports whether the client is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the client is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
