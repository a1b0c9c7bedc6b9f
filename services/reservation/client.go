package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dineflow/models"
)

// HTTPBookingService talks to a remote booking API exposing the same three
// operations as the in-process service. 400 responses map to error-field
// results; anything the transport swallows comes back as a Go error.
type HTTPBookingService struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPBookingService(baseURL string, timeout time.Duration) *HTTPBookingService {
	return &HTTPBookingService{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPBookingService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/restaurants", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booking api: list restaurants: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("booking api: list restaurants: unexpected status %d", resp.StatusCode)
	}
	var body struct {
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("booking api: decode restaurants: %w", err)
	}
	return body.Restaurants, nil
}

func (s *HTTPBookingService) CheckAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error) {
	var result models.AvailabilityResult
	status, err := s.post(ctx, "/api/check_availability", req, &result)
	if err != nil {
		return models.AvailabilityResult{}, err
	}
	switch status {
	case http.StatusOK:
		return result, nil
	case http.StatusBadRequest:
		if result.Error == "" {
			result.Error = "Bad request"
		}
		result.Available = false
		return result, nil
	default:
		return models.AvailabilityResult{Available: false, Error: fmt.Sprintf("Server error: %d", status)}, nil
	}
}

func (s *HTTPBookingService) CreateReservation(ctx context.Context, req models.ReservationRequest) (models.ReservationResult, error) {
	var result models.ReservationResult
	status, err := s.post(ctx, "/api/make_reservation", req, &result)
	if err != nil {
		return models.ReservationResult{}, err
	}
	switch status {
	case http.StatusCreated, http.StatusOK:
		return result, nil
	case http.StatusBadRequest:
		if result.Error == "" {
			result.Error = "Bad request"
		}
		result.Success = false
		return result, nil
	default:
		return models.ReservationResult{Success: false, Error: fmt.Sprintf("Server error: %d", status)}, nil
	}
}

func (s *HTTPBookingService) post(ctx context.Context, path string, payload any, out any) (int, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("booking api: %s: %w", path, err)
	}
	defer resp.Body.Close()

	// Ignore decode failures on non-JSON bodies; the status code decides.
	_ = json.NewDecoder(resp.Body).Decode(out)
	return resp.StatusCode, nil
}
