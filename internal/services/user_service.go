// Package services implements the business logic for the users resource.
//
// UserService validates input before touching the store and raises domain
// errors (internal/domain) for predictable failure cases so the HTTP layer
// can map them to status codes consistently. Lookups return an absent signal
// instead of raising; the endpoint decides whether absence is a 404.
package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-user-backend/internal/domain"
)

// Validation messages. These are part of the API contract: clients and tests
// match on the exact strings, joined by ", " when several rules fail at once.
const (
	msgNameRequired  = "Name is required"
	msgNameTooShort  = "Name must be at least 2 characters long"
	msgEmailRequired = "Email is required"
	msgEmailInvalid  = "Email format is invalid"
)

// emailRE is the intentionally simple address shape: no whitespace, exactly
// one "@", and at least one "." in the domain part. Not RFC 5322; matching
// the permissive check real signup forms use.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore is the repository contract required by UserService. The concrete
// implementation is the mutex-guarded in-memory store in internal/repo.
type UserStore interface {
	// Get returns a copy of the user, or ok=false when absent.
	Get(id int) (domain.User, bool)
	// List returns a snapshot copy of all users.
	List() []domain.User
	// Insert appends a user with the next id and server-assigned CreatedAt.
	Insert(name, email string) domain.User
	// Update merges non-nil fields; ok=false when the id is unknown.
	Update(id int, name, email *string) (domain.User, bool)
	// Delete removes a user and reports whether it existed.
	Delete(id int) bool
}

// UserService provides create/read/update/delete operations on users with
// input validation. It is safe for concurrent use as long as the underlying
// store is.
type UserService struct {
	Store UserStore
}

// NewUserService constructs a UserService bound to the given store.
func NewUserService(store UserStore) *UserService {
	return &UserService{Store: store}
}

// Get returns the user with the given id, or ok=false when absent.
// It never raises: absence is a normal result at this layer.
func (s *UserService) Get(ctx context.Context, id int) (domain.User, bool) {
	return s.Store.Get(id)
}

// List returns a snapshot of all users.
func (s *UserService) List(ctx context.Context) []domain.User {
	return s.Store.List()
}

// Create validates the input and appends a new user.
//
// All violated rules are collected and reported in a single Validation error,
// joined by ", ". Nothing is appended when validation fails.
func (s *UserService) Create(ctx context.Context, in domain.CreateUserInput) (domain.User, error) {
	var violations []string
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		violations = append(violations, msgNameRequired)
	case utf8.RuneCountInString(name) < 2:
		violations = append(violations, msgNameTooShort)
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		violations = append(violations, msgEmailRequired)
	case !emailRE.MatchString(email):
		violations = append(violations, msgEmailInvalid)
	}

	if len(violations) > 0 {
		return domain.User{}, domain.Validation(strings.Join(violations, ", "))
	}

	u := s.Store.Insert(name, email)
	log.Info().Int("user_id", u.ID).Str("email", u.Email).Msg("user created")
	return u, nil
}

// Update applies a partial update to the user with the given id.
//
// Returns ok=false when the id is unknown (the caller maps that to NotFound
// at the transport boundary). Only fields present in the input are validated,
// with the same rules and messages as Create.
func (s *UserService) Update(ctx context.Context, id int, in domain.UpdateUserInput) (domain.User, bool, error) {
	if _, found := s.Store.Get(id); !found {
		return domain.User{}, false, nil
	}

	var violations []string
	var name, email *string

	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		switch {
		case n == "":
			violations = append(violations, msgNameRequired)
		case utf8.RuneCountInString(n) < 2:
			violations = append(violations, msgNameTooShort)
		default:
			name = &n
		}
	}
	if in.Email != nil {
		e := strings.TrimSpace(*in.Email)
		switch {
		case e == "":
			violations = append(violations, msgEmailRequired)
		case !emailRE.MatchString(e):
			violations = append(violations, msgEmailInvalid)
		default:
			email = &e
		}
	}

	if len(violations) > 0 {
		return domain.User{}, true, domain.Validation(strings.Join(violations, ", "))
	}

	u, found := s.Store.Update(id, name, email)
	if !found {
		// Deleted between the existence check and the merge.
		return domain.User{}, false, nil
	}
	log.Info().Int("user_id", u.ID).Msg("user updated")
	return u, true, nil
}

// Delete removes the user with the given id and reports whether it existed.
// The caller maps false to NotFound at the transport boundary.
func (s *UserService) Delete(ctx context.Context, id int) bool {
	deleted := s.Store.Delete(id)
	if deleted {
		log.Info().Int("user_id", id).Msg("user deleted")
	}
	return deleted
}
