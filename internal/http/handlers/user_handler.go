// User HTTP handlers.
//
// This file exposes the REST endpoints for the users resource:
//   - GET    /users        (list)
//   - GET    /users/:id    (fetch)
//   - POST   /users        (create)
//   - PUT    /users/:id    (partial update)
//   - DELETE /users/:id    (delete)
//
// Handlers are transport-thin: they parse path/body parameters, call the
// service, and wrap results in the standard envelope. Failures are attached
// to the Gin context and translated by ErrorHandler(); nothing here writes an
// error response directly.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-user-backend/internal/domain"
	"github.com/tbourn/go-user-backend/internal/http/middleware"
)

// UserService defines the user operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use. Lookups signal absence
// with ok=false instead of an error; the handler decides whether absence is
// a 404 for its endpoint.
type UserService interface {
	// Get returns the user or ok=false when absent.
	Get(ctx context.Context, id int) (domain.User, bool)
	// List returns a snapshot of all users.
	List(ctx context.Context) []domain.User
	// Create validates the input and appends a new user.
	Create(ctx context.Context, in domain.CreateUserInput) (domain.User, error)
	// Update applies a partial update; found=false when the id is unknown.
	Update(ctx context.Context, id int, in domain.UpdateUserInput) (domain.User, bool, error)
	// Delete removes a user and reports whether it existed.
	Delete(ctx context.Context, id int) bool
}

// Handlers groups the HTTP endpoints of the API. It depends on the abstract
// service interface to keep transport concerns separate from business logic.
type Handlers struct {
	users UserService

	env     string
	version string
}

// New constructs a Handlers instance bound to the given service. env and
// version feed the health endpoint and startup diagnostics.
func New(users UserService, env, version string) *Handlers {
	return &Handlers{users: users, env: env, version: version}
}

// parseID extracts the numeric :id path parameter. A non-numeric id is a
// BadRequest, distinct from a well-formed id that matches nothing (NotFound).
func parseID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, domain.BadRequest("Invalid user ID")
	}
	return id, nil
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users
// @Description Returns every user wrapped in the standard envelope.
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.Envelope{data=[]domain.User}
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	middleware.LoggerFrom(c).Info().Msg("listing users")

	users := h.users.List(c.Request.Context())
	ok(c, http.StatusOK, users)
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch a user by id
// @Tags        Users
// @Produce     json
// @Param       id  path  int  true  "User ID"
// @Success     200  {object}  handlers.Envelope{data=domain.User}
// @Failure     400  {object}  handlers.Envelope  "Invalid user ID"
// @Failure     404  {object}  handlers.Envelope  "User not found"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	lg := middleware.LoggerFrom(c)

	id, err := parseID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	lg.Info().Int("user_id", id).Msg("fetching user")

	u, found := h.users.Get(c.Request.Context(), id)
	if !found {
		lg.Warn().Int("user_id", id).Msg("user not found")
		_ = c.Error(domain.NotFound("User not found"))
		return
	}
	ok(c, http.StatusOK, u)
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a user
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  domain.CreateUserInput  true  "New user payload"
// @Success     201  {object}  handlers.Envelope{data=domain.User}
// @Failure     400  {object}  handlers.Envelope  "Validation failure or malformed body"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	lg := middleware.LoggerFrom(c)

	var req domain.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(domain.BadRequest("Invalid request body"))
		return
	}
	lg.Info().Str("email", req.Email).Msg("creating user")

	u, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	okMessage(c, http.StatusCreated, u, "User created successfully")
}

// UpdateUser godoc
// @ID          updateUser
// @Summary     Partially update a user
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       id    path  int                     true  "User ID"
// @Param       body  body  domain.UpdateUserInput  true  "Fields to update"
// @Success     200  {object}  handlers.Envelope{data=domain.User}
// @Failure     400  {object}  handlers.Envelope  "Invalid id or validation failure"
// @Failure     404  {object}  handlers.Envelope  "User not found"
// @Router      /users/{id} [put]
func (h *Handlers) UpdateUser(c *gin.Context) {
	lg := middleware.LoggerFrom(c)

	id, err := parseID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req domain.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(domain.BadRequest("Invalid request body"))
		return
	}
	lg.Info().Int("user_id", id).Msg("updating user")

	u, found, err := h.users.Update(c.Request.Context(), id, req)
	if !found {
		lg.Warn().Int("user_id", id).Msg("user not found")
		_ = c.Error(domain.NotFound("User not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	okMessage(c, http.StatusOK, u, "User updated successfully")
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Delete a user
// @Tags        Users
// @Produce     json
// @Param       id  path  int  true  "User ID"
// @Success     200  {object}  handlers.Envelope
// @Failure     400  {object}  handlers.Envelope  "Invalid user ID"
// @Failure     404  {object}  handlers.Envelope  "User not found"
// @Router      /users/{id} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	lg := middleware.LoggerFrom(c)

	id, err := parseID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	lg.Info().Int("user_id", id).Msg("deleting user")

	if !h.users.Delete(c.Request.Context(), id) {
		lg.Warn().Int("user_id", id).Msg("user not found")
		_ = c.Error(domain.NotFound("User not found"))
		return
	}
	okMessage(c, http.StatusOK, nil, "User deleted successfully")
}
