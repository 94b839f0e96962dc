// Package handlers provides HTTP handler implementations for the public API.
//
// This file owns the translation from domain errors to HTTP responses. The
// kind→status table is the single source of truth, and ErrorHandler() is the
// single interception point: endpoint handlers attach errors to the Gin
// context and return, they never write error responses themselves.
//
// Classification is ordered, first match wins:
//  1. exact tagged type (*domain.Error) → table lookup by kind
//  2. any error exposing ErrorKind() string whose name is in the table
//  3. message containing the legacy "Validation failed" marker → 400
//  4. everything else → 500 with a generic, non-leaking message
//
// Step 3 is a backward-compatibility shim for errors predating the tagged
// type. It is deliberately a single isolated rule; do not add substring
// matching for other kinds.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-user-backend/internal/domain"
	"github.com/tbourn/go-user-backend/internal/http/middleware"
)

// kindStatus maps every member of the closed taxonomy to exactly one HTTP
// status code. The map is package-private and never mutated after init, so
// the totality invariant cannot be broken at runtime.
var kindStatus = map[domain.ErrorKind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindBadRequest:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
	domain.KindInternal:     http.StatusInternalServerError,
}

// statusOf resolves a kind to its HTTP status. Unknown kinds clamp to 500 so
// the mapping stays total even if a new kind misses its table entry.
func statusOf(kind domain.ErrorKind) int {
	if s, ok := kindStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// legacyValidationMarker is the substring recognized by the legacy
// compatibility rule (classification step 3).
const legacyValidationMarker = "Validation failed"

// genericInternalMessage is the only text a client ever sees for 5xx
// failures. Diagnostic detail stays in server-side logs.
const genericInternalMessage = "Internal server error"

// kindNamer is the name-based fallback contract: errors constructed without
// the tagged type can still classify themselves by kind name.
type kindNamer interface {
	ErrorKind() string
}

// ErrorHandler returns the central error-translation middleware.
//
// It runs after the endpoint handler and inspects errors collected on the
// Gin context. Per failed request it emits exactly one log line (warn below
// 500, error with the cause at 500 and above) and exactly one JSON error
// envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, msg := classify(err)

		lg := middleware.LoggerFrom(c)
		if status >= http.StatusInternalServerError {
			lg.Error().
				Err(err).
				Int("status", status).
				Msg("request failed")
		} else {
			lg.Warn().
				Int("status", status).
				Str("error", msg).
				Msg("request failed")
		}

		if !c.Writer.Written() {
			c.JSON(status, errorEnvelope(msg))
		}
	}
}

// classify resolves an arbitrary propagated error to a status code and a
// client-safe message. Any resolution at or above 500 replaces the message
// with genericInternalMessage so internal detail never leaks.
func classify(err error) (int, string) {
	status, msg := resolve(err)
	if status >= http.StatusInternalServerError {
		return status, genericInternalMessage
	}
	return status, msg
}

// resolve applies the ordered classification rules.
func resolve(err error) (int, string) {
	// 1) Exact tagged type.
	var derr *domain.Error
	if errors.As(err, &derr) {
		return statusOf(derr.Kind), derr.Message
	}

	// 2) Name-based fallback for foreign error types carrying a kind name.
	var kn kindNamer
	if errors.As(err, &kn) {
		if status, known := kindStatus[domain.ErrorKind(kn.ErrorKind())]; known {
			return status, err.Error()
		}
	}

	// 3) Legacy substring rule, kept isolated so it is easy to delete.
	if strings.Contains(err.Error(), legacyValidationMarker) {
		return http.StatusBadRequest, err.Error()
	}

	// 4) Unknown failure.
	return http.StatusInternalServerError, err.Error()
}
