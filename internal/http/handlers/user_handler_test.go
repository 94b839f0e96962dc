package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-user-backend/internal/domain"
	"github.com/tbourn/go-user-backend/internal/repo"
	"github.com/tbourn/go-user-backend/internal/services"
)

// userEnv / usersEnv give the envelope a typed data field for assertions.
type userEnv struct {
	Success   bool        `json:"success"`
	Data      domain.User `json:"data"`
	Message   string      `json:"message"`
	Error     string      `json:"error"`
	Timestamp time.Time   `json:"timestamp"`
}

type usersEnv struct {
	Success bool          `json:"success"`
	Data    []domain.User `json:"data"`
	Error   string        `json:"error"`
}

// newUserAPI wires handlers → service → store exactly like the router does,
// with the central error handler installed.
func newUserAPI() (*gin.Engine, *repo.UserStore) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())

	store := repo.NewUserStore()
	h := New(services.NewUserService(store), "test", "1.0.0")

	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.POST("/users", h.CreateUser)
	r.PUT("/users/:id", h.UpdateUser)
	r.DELETE("/users/:id", h.DeleteUser)
	return r, store
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListUsers_EmptyAndPopulated(t *testing.T) {
	r, store := newUserAPI()

	w := do(t, r, http.MethodGet, "/users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var env usersEnv
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !env.Success || len(env.Data) != 0 {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	store.Seed(domain.User{Name: "John Doe", Email: "john@example.com"})
	w = do(t, r, http.MethodGet, "/users", "")
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(env.Data) != 1 || env.Data[0].Name != "John Doe" {
		t.Fatalf("unexpected data: %+v", env.Data)
	}
}

func TestGetUser_InvalidIDIs400(t *testing.T) {
	r, _ := newUserAPI()

	w := do(t, r, http.MethodGet, "/users/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	var env userEnv
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if env.Success || env.Error != "Invalid user ID" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}

func TestGetUser_UnknownIDIs404(t *testing.T) {
	r, _ := newUserAPI()

	w := do(t, r, http.MethodGet, "/users/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var env userEnv
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if env.Success || env.Error != "User not found" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
	if env.Timestamp.IsZero() {
		t.Fatalf("missing timestamp")
	}
}

func TestCreateUser_Success201(t *testing.T) {
	r, _ := newUserAPI()

	w := do(t, r, http.MethodPost, "/users", `{"name":"John Doe","email":"john@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var env userEnv
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !env.Success || env.Message != "User created successfully" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Data.ID != 1 || env.Data.Email != "john@example.com" || env.Data.CreatedAt.IsZero() {
		t.Fatalf("unexpected entity: %+v", env.Data)
	}
}

func TestCreateUser_MalformedJSONIs400(t *testing.T) {
	r, _ := newUserAPI()

	w := do(t, r, http.MethodPost, "/users", `{"name": "John`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	var env userEnv
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if env.Error != "Invalid request body" {
		t.Fatalf("error=%q", env.Error)
	}
}

func TestCreateUser_ValidationFailureIs400(t *testing.T) {
	r, store := newUserAPI()

	w := do(t, r, http.MethodPost, "/users", `{"name":"A","email":"bad-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	var env userEnv
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	want := "Name must be at least 2 characters long, Email format is invalid"
	if env.Error != want {
		t.Fatalf("error=%q want %q", env.Error, want)
	}
	if len(store.List()) != 0 {
		t.Fatalf("entity appended despite validation failure")
	}
}

func TestUpdateUser_PartialBody(t *testing.T) {
	r, store := newUserAPI()
	store.Seed(domain.User{Name: "John Doe", Email: "john@example.com"})

	w := do(t, r, http.MethodPut, "/users/1", `{"name":"Jane Doe"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var env userEnv
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if env.Message != "User updated successfully" {
		t.Fatalf("message=%q", env.Message)
	}
	if env.Data.Name != "Jane Doe" || env.Data.Email != "john@example.com" {
		t.Fatalf("merge wrong: %+v", env.Data)
	}
}

func TestUpdateUser_InvalidIDAndUnknownID(t *testing.T) {
	r, _ := newUserAPI()

	if w := do(t, r, http.MethodPut, "/users/x", `{"name":"Jane Doe"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPut, "/users/42", `{"name":"Jane Doe"}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status=%d", w.Code)
	}
}

func TestUpdateUser_ValidationFailureIs400(t *testing.T) {
	r, store := newUserAPI()
	store.Seed(domain.User{Name: "John Doe", Email: "john@example.com"})

	w := do(t, r, http.MethodPut, "/users/1", `{"email":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	var env userEnv
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if env.Error != "Email format is invalid" {
		t.Fatalf("error=%q", env.Error)
	}
}

func TestDeleteUser_ThenSecondDeleteIs404(t *testing.T) {
	r, store := newUserAPI()
	store.Seed(domain.User{Name: "John Doe", Email: "john@example.com"})

	w := do(t, r, http.MethodDelete, "/users/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var env userEnv
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if !env.Success || env.Message != "User deleted successfully" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}

	w = do(t, r, http.MethodDelete, "/users/1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d", w.Code)
	}

	if w := do(t, r, http.MethodDelete, "/users/oops", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id status=%d", w.Code)
	}
}
