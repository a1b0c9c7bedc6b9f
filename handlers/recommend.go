package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dineflow/models"
	"dineflow/services/recommend"
)

// RecommendationHandler exposes the recommendation endpoint.
type RecommendationHandler struct {
	Recommender *recommend.Service
	Logger      *zap.Logger
}

func NewRecommendationHandler(recommender *recommend.Service, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{Recommender: recommender, Logger: logger}
}

// Recommendations handles POST /api/recommendations. The input is free
// text; preferences are extracted from it the same way the chat agent does.
// An optional context carries booking slots already collected elsewhere.
func (h *RecommendationHandler) Recommendations(c *gin.Context) {
	var req struct {
		Input   string                 `json:"input" binding:"required"`
		Context *models.BookingSession `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.Recommender.ForUser(c.Request.Context(), req.Input, req.Context)
	if err != nil {
		h.Logger.Error("Recommendations: engine failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build recommendations"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
