// Package domain defines the core entities and the domain error taxonomy of
// the user backend. This file holds the User entity and the request inputs
// consumed by the service layer.
package domain

import "time"

// User is the demo resource managed by the backend.
//
// Fields:
//   - ID: positive integer assigned by the store (max existing id + 1).
//   - Name: display name, at least 2 characters after trimming.
//   - Email: address matching a simple local@domain.tld shape.
//   - CreatedAt: server-assigned creation timestamp (UTC).
type User struct {
	ID        int       `json:"id"        example:"1"`
	Name      string    `json:"name"      example:"John Doe"`
	Email     string    `json:"email"     example:"john@example.com"`
	CreatedAt time.Time `json:"createdAt" example:"2025-01-15T09:30:00Z"`
}

// CreateUserInput is the payload for creating a user. Both fields are
// required; validation happens in the service layer so the messages stay
// consistent across transports.
type CreateUserInput struct {
	Name  string `json:"name"  example:"John Doe"`
	Email string `json:"email" example:"john@example.com"`
}

// UpdateUserInput is the payload for partially updating a user. Nil fields
// are left untouched; only non-nil fields are validated and merged.
type UpdateUserInput struct {
	Name  *string `json:"name,omitempty"  example:"Jane Doe"`
	Email *string `json:"email,omitempty" example:"jane@example.com"`
}
