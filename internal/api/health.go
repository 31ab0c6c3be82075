package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports the status of the service dependencies.
type HealthHandler struct {
	checks map[string]HealthCheck
	info   gin.H
}

// NewHealthHandler creates the handler. info is echoed in every response.
func NewHealthHandler(checks map[string]HealthCheck, info gin.H) *HealthHandler {
	return &HealthHandler{checks: checks, info: info}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	deps := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = gin.H{"status": "down", "error": err.Error()}
			status = "degraded"
			continue
		}
		deps[name] = gin.H{"status": "up"}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	body := gin.H{"status": status, "dependencies": deps}
	for k, v := range h.info {
		body[k] = v
	}
	c.JSON(code, body)
}
