package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dineflow/models"
	"dineflow/services/recommend"
)

type stubBooking struct {
	catalog []models.Restaurant
}

func (s *stubBooking) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.catalog, nil
}

func (s *stubBooking) CheckAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error) {
	return models.AvailabilityResult{Available: true, AvailableTables: 2}, nil
}

func (s *stubBooking) CreateReservation(ctx context.Context, req models.ReservationRequest) (models.ReservationResult, error) {
	return models.ReservationResult{Success: true}, nil
}

func recommendationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	booking := &stubBooking{catalog: []models.Restaurant{
		{ID: 1, Name: "Pasta Palace", Cuisine: "Italian", Location: "Midtown", Capacity: 35},
		{ID: 2, Name: "Dragon Wok", Cuisine: "Chinese", Location: "Chinatown", Capacity: 50},
	}}
	engine, err := recommend.NewEngine(context.Background(), booking, zap.NewNop())
	require.NoError(t, err)
	h := NewRecommendationHandler(recommend.NewService(engine, zap.NewNop()), zap.NewNop())

	r := gin.New()
	r.POST("/api/recommendations", h.Recommendations)
	return r
}

func TestRecommendationsBindsInput(t *testing.T) {
	r := recommendationRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations",
		strings.NewReader(`{"input":"recommend italian food"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recommendation_type")
}

func TestRecommendationsRejectsMissingInput(t *testing.T) {
	r := recommendationRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations",
		strings.NewReader(`{"message":"recommend italian food"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationsAcceptsContext(t *testing.T) {
	r := recommendationRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations",
		strings.NewReader(`{"input":"recommend something","context":{"party_size":4,"date":"2026-09-02","time":"19:00"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
