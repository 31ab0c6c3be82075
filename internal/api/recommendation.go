package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/pageza/nutriplan/backend/internal/service"
)

// RecommendationHandler serves profile evaluation and stored plans.
type RecommendationHandler struct {
	svc     service.IRecommendationService
	limiter gin.HandlerFunc
}

// NewRecommendationHandler creates the handler. limiter guards the evaluate
// route and may be nil.
func NewRecommendationHandler(svc service.IRecommendationService, limiter gin.HandlerFunc) *RecommendationHandler {
	return &RecommendationHandler{svc: svc, limiter: limiter}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	evaluate := []gin.HandlerFunc{h.Evaluate}
	if h.limiter != nil {
		evaluate = append([]gin.HandlerFunc{h.limiter}, evaluate...)
	}
	router.POST("/evaluate", evaluate...)
	router.GET("/plans/:id", h.GetPlan)
}

// Evaluate accepts the profile as a JSON object or as form fields. With
// ?save=true the evaluation is stored and answered with 201.
func (h *RecommendationHandler) Evaluate(c *gin.Context) {
	raw, err := bindRawInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	save, _ := strconv.ParseBool(c.Query("save"))
	if save {
		saved, err := h.svc.EvaluateAndSave(c.Request.Context(), raw)
		if err != nil {
			c.Error(err)
			return
		}
		c.Header("Location", "/api/v1/plans/"+saved.ID.String())
		c.JSON(http.StatusCreated, saved)
		return
	}

	ev, err := h.svc.Evaluate(c.Request.Context(), raw)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *RecommendationHandler) GetPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	plan, err := h.svc.GetPlan(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// bindRawInput reads the known profile fields from a JSON body or a form.
func bindRawInput(c *gin.Context) (profile.RawInput, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return profile.DecodeJSON(c.Request.Body)
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	raw := profile.RawInput{}
	for _, name := range profile.FieldNames {
		v, ok := c.Request.PostForm[name]
		switch {
		case !ok || len(v) == 0:
		case profile.ListFields[name]:
			raw[name] = profile.JoinList(v)
		default:
			raw[name] = v[0]
		}
	}
	return raw, nil
}
