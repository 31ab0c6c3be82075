package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pageza/nutriplan/backend/internal/middleware"
	"github.com/pageza/nutriplan/backend/internal/repository"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// AdminHandler lets operators browse stored evaluations.
type AdminHandler struct {
	svc  service.IRecommendationService
	auth middleware.TokenValidator
}

func NewAdminHandler(svc service.IRecommendationService, auth middleware.TokenValidator) *AdminHandler {
	return &AdminHandler{svc: svc, auth: auth}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.auth), middleware.RequireRole(types.RoleAdmin, types.RoleViewer))
	{
		admin.GET("/plans", h.ListPlans)
	}
}

func (h *AdminHandler) ListPlans(c *gin.Context) {
	limit, err := queryInt(c, "limit", 20)
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must not be negative"})
		return
	}

	plans, total, err := h.svc.ListPlans(c.Request.Context(), repository.PlanFilter{
		ProfileHash: c.Query("profile_hash"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plans":  plans,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
