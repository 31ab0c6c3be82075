package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/service"
)

// CatalogHandler exposes the food catalog and the rule set read-only.
type CatalogHandler struct {
	svc service.IRecommendationService
}

func NewCatalogHandler(svc service.IRecommendationService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/foods", h.ListFoods)
	router.GET("/rules", h.ListRules)
}

func (h *CatalogHandler) ListFoods(c *gin.Context) {
	var slot catalog.Slot
	if q := c.Query("category"); q != "" {
		s, ok := catalog.ParseSlot(q)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "category": q})
			return
		}
		slot = s
	}

	foods := h.svc.Foods(slot)
	c.JSON(http.StatusOK, gin.H{"foods": foods, "count": len(foods)})
}

func (h *CatalogHandler) ListRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rules":    h.svc.Rules(),
		"taxonomy": h.svc.Taxonomy(),
	})
}
