// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response envelope used across all endpoints.
// Every success and error response shares one wire shape, making the API
// predictable for clients:
//
//	success: { "success": true,  "data": ..., "message": "...", "timestamp": "..." }
//	error:   { "success": false, "error": "...",                "timestamp": "..." }
//
// Exactly one of data/error is present depending on success, and timestamp is
// always the server time at response construction (RFC 3339, UTC).
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard success/error wrapper returned by all endpoints.
type Envelope struct {
	// Success discriminates the two envelope shapes.
	Success bool `json:"success"`
	// Data carries the payload on success; omitted on errors and on
	// message-only successes (e.g. delete).
	Data any `json:"data,omitempty"`
	// Message optionally describes a successful operation.
	Message string `json:"message,omitempty" example:"User created successfully"`
	// Error carries the client-safe failure description.
	Error string `json:"error,omitempty" example:"User not found"`
	// Timestamp is the server time when the response was built.
	Timestamp time.Time `json:"timestamp" example:"2025-01-15T09:30:00Z"`
}

// ok writes a success envelope wrapping data with the given HTTP status.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// okMessage writes a success envelope with an operation message. A nil data
// yields a message-only envelope.
func okMessage(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	})
}

// errorEnvelope builds the error-shaped envelope.
func errorEnvelope(msg string) Envelope {
	return Envelope{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now().UTC(),
	}
}

// Fail writes an error envelope and aborts the request. It is exported for
// router-level fallbacks (NoRoute/NoMethod) that fire outside the central
// error handler.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorEnvelope(msg))
}
