// System HTTP handlers: liveness and a demo greeting endpoint. Both respond
// 200 unconditionally and are not wrapped in the envelope.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status      string    `json:"status"      example:"ok"`
	Timestamp   time.Time `json:"timestamp"   example:"2025-01-15T09:30:00Z"`
	Environment string    `json:"environment" example:"development"`
}

// HelloResponse echoes basic request metadata.
type HelloResponse struct {
	Message   string    `json:"message"   example:"Hello from go-user-backend"`
	Method    string    `json:"method"    example:"GET"`
	Path      string    `json:"path"      example:"/api/hello"`
	Timestamp time.Time `json:"timestamp" example:"2025-01-15T09:30:00Z"`
}

// Health godoc
// @ID          health
// @Summary     Liveness check
// @Tags        System
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Environment: h.env,
	})
}

// Hello godoc
// @ID          hello
// @Summary     Demo greeting
// @Tags        System
// @Produce     json
// @Success     200  {object}  handlers.HelloResponse
// @Router      /hello [get]
func (h *Handlers) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, HelloResponse{
		Message:   "Hello from go-user-backend",
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}
