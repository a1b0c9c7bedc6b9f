package reservation

import (
	"context"
	"strings"
	"time"

	catalogRepo "dineflow/database/repository/catalog"
	reservationRepo "dineflow/database/repository/reservation"
	"dineflow/models"

	"go.uber.org/zap"
)

const wireDateTimeLayout = "2006-01-02 15:04"

// DefaultBookingService is the in-process booking collaborator, backed by the
// mongo catalog and reservation repositories. Availability picks the smallest
// free table that fits the party; creating a reservation takes the table out
// of the free pool until the reservation is cancelled.
type DefaultBookingService struct {
	Catalog      catalogRepo.CatalogRepository
	Reservations reservationRepo.ReservationRepository
	Holds        *HoldStore
	Reminders    ReminderScheduler
	Logger       *zap.Logger
}

func (s *DefaultBookingService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.Catalog.ListRestaurants()
}

func (s *DefaultBookingService) CheckAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error) {
	if msg := validateAvailability(req); msg != "" {
		return models.AvailabilityResult{Available: false, Error: msg}, nil
	}

	tables, err := s.Catalog.FreeTables(req.RestaurantID, req.PartySize)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	var candidates []models.Table
	for _, t := range tables {
		reserved, err := s.Reservations.TableReserved(t.ID, req.Date, req.Time)
		if err != nil {
			return models.AvailabilityResult{}, err
		}
		if reserved {
			continue
		}
		candidates = append(candidates, t)
	}

	if len(candidates) == 0 {
		return models.AvailabilityResult{Available: false, Error: "No tables available"}, nil
	}

	suggested := candidates[0]
	if s.Holds != nil {
		// Prefer a table nobody else was just offered. Holds are advisory:
		// if every candidate is held, offer the first one anyway.
		for _, t := range candidates {
			held, err := s.Holds.Held(ctx, t.ID, req.Date, req.Time)
			if err != nil {
				s.Logger.Warn("table hold lookup failed", zap.Int("table_id", t.ID), zap.Error(err))
				break
			}
			if !held {
				suggested = t
				break
			}
		}
		if _, err := s.Holds.Place(ctx, suggested.ID, req.Date, req.Time); err != nil {
			s.Logger.Warn("failed to place table hold", zap.Int("table_id", suggested.ID), zap.Error(err))
		}
	}

	id := suggested.ID
	return models.AvailabilityResult{
		Available:        true,
		AvailableTables:  len(candidates),
		SuggestedTableID: &id,
	}, nil
}

func (s *DefaultBookingService) CreateReservation(ctx context.Context, req models.ReservationRequest) (models.ReservationResult, error) {
	if msg := validateReservation(req); msg != "" {
		return models.ReservationResult{Success: false, Error: msg}, nil
	}

	table, err := s.Catalog.GetTable(req.TableID)
	if err != nil {
		return models.ReservationResult{Success: false, Error: "Invalid table ID"}, nil
	}
	if table.RestaurantID != req.RestaurantID {
		return models.ReservationResult{Success: false, Error: "Table does not belong to this restaurant"}, nil
	}
	if !table.IsAvailable {
		return models.ReservationResult{Success: false, Error: "Table is no longer available"}, nil
	}
	reserved, err := s.Reservations.TableReserved(req.TableID, req.Date, req.Time)
	if err != nil {
		return models.ReservationResult{}, err
	}
	if reserved {
		return models.ReservationResult{Success: false, Error: "Table is already reserved for that time"}, nil
	}

	res := models.Reservation{
		UserName:     strings.TrimSpace(req.UserName),
		UserPhone:    strings.TrimSpace(req.UserPhone),
		UserEmail:    strings.TrimSpace(req.UserEmail),
		RestaurantID: req.RestaurantID,
		TableID:      req.TableID,
		PartySize:    req.PartySize,
		Date:         req.Date,
		Time:         req.Time,
	}
	id, err := s.Reservations.Insert(res)
	if err != nil {
		return models.ReservationResult{}, err
	}
	res.ID = id

	if err := s.Catalog.SetTableAvailability(req.TableID, false); err != nil {
		s.Logger.Error("reservation stored but table not marked", zap.Int("table_id", req.TableID), zap.Error(err))
	}
	if s.Holds != nil {
		if err := s.Holds.Release(ctx, req.TableID, req.Date, req.Time); err != nil {
			s.Logger.Warn("failed to release table hold", zap.Int("table_id", req.TableID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		name := ""
		if r, err := s.Catalog.GetRestaurant(req.RestaurantID); err == nil {
			name = r.Name
		}
		if err := s.Reminders.Schedule(res, name); err != nil {
			s.Logger.Warn("failed to schedule reservation reminder", zap.Int("reservation_id", id), zap.Error(err))
		}
	}

	return models.ReservationResult{Success: true, ReservationID: &id}, nil
}

func validateAvailability(req models.AvailabilityRequest) string {
	if req.RestaurantID <= 0 {
		return "Invalid restaurant ID"
	}
	if req.PartySize < 1 || req.PartySize > 20 {
		return "Party size must be between 1 and 20"
	}
	if req.Date == "" {
		return "Date is required"
	}
	if req.Time == "" {
		return "Time is required"
	}
	if _, err := time.Parse(wireDateTimeLayout, req.Date+" "+req.Time); err != nil {
		return "Invalid date or time format"
	}
	return ""
}

func validateReservation(req models.ReservationRequest) string {
	if len(strings.TrimSpace(req.UserName)) < 2 {
		return "Valid name is required"
	}
	if len(strings.TrimSpace(req.UserPhone)) < 10 {
		return "Valid phone number is required"
	}
	if req.RestaurantID <= 0 {
		return "Invalid restaurant ID"
	}
	if req.TableID <= 0 {
		return "Invalid table ID"
	}
	if req.PartySize < 1 || req.PartySize > 20 {
		return "Party size must be between 1 and 20"
	}
	if _, err := time.Parse(wireDateTimeLayout, req.Date+" "+req.Time); err != nil {
		return "Invalid date or time format"
	}
	return ""
}
