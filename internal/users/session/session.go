// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package session implements the client-side auth session: the single source of
truth for "who is logged in" and the credentials used to authenticate calls.

# Architecture

The [Manager] is an explicit, constructor-injected state object with a defined
lifecycle (Restore at startup, Login/SetTokens/Logout mutations, no implicit
teardown). It is never imported as an ambient global; the application container
owns exactly one instance and hands it to whoever needs it.

State is mirrored 1:1 into durable storage under the "auth" key on every
mutation. The persisted blob is {token, refreshToken, user}, matching the
wire shape the hotel-operations backend produced for the original web client.
*/
package session

import "time"

// # Domain Entities

// Role identifies the access level of an authenticated guest.
type Role string

const (
	// RoleUser is a regular hotel guest.
	RoleUser Role = "user"

	// RoleAdmin is back-office staff.
	RoleAdmin Role = "admin"
)

// User represents the authenticated guest as returned by the backend.
//
// Field names mirror the backend's JSON (Mongo-style "_id") so the persisted
// blob round-trips byte-compatibly with what the API sends.
type User struct {
	ID              string    `json:"_id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Role            Role      `json:"role,omitempty"`
	IsActive        bool      `json:"isActive,omitempty"`
	AuthProvider    string    `json:"authProvider,omitempty"`
	ProfilePicture  string    `json:"profilePicture,omitempty"`
	IsPhoneVerified bool      `json:"isPhoneVerified,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// Snapshot is an immutable copy of the current session state.
//
// Invariant (maintained by construction, not cryptographically enforced):
// User is non-nil if and only if AccessToken is non-empty.
type Snapshot struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// Authenticated reports whether the snapshot represents a logged-in guest.
func (s Snapshot) Authenticated() bool {
	return s.User != nil && s.AccessToken != ""
}

// IsAdmin reports whether the snapshot belongs to back-office staff.
func (s Snapshot) IsAdmin() bool {
	return s.User != nil && s.User.Role == RoleAdmin
}

// persistedSession is the storage layout of the "auth" key.
type persistedSession struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
