package reservation

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dineflow/models"
)

type memCatalog struct {
	restaurants []models.Restaurant
	tables      map[int]*models.Table
}

func newMemCatalog() *memCatalog {
	c := &memCatalog{
		restaurants: []models.Restaurant{
			{ID: 1, Name: "Spice Garden", Cuisine: "Indian", Location: "Downtown", Capacity: 40},
		},
		tables: map[int]*models.Table{},
	}
	for i, capacity := range []int{2, 2, 4, 4, 4, 6, 6, 8, 10} {
		id := i + 1
		c.tables[id] = &models.Table{ID: id, RestaurantID: 1, Capacity: capacity, IsAvailable: true}
	}
	return c
}

func (c *memCatalog) ListRestaurants() ([]models.Restaurant, error) { return c.restaurants, nil }

func (c *memCatalog) GetRestaurant(id int) (*models.Restaurant, error) {
	for i := range c.restaurants {
		if c.restaurants[i].ID == id {
			return &c.restaurants[i], nil
		}
	}
	return nil, errors.New("restaurant not found")
}

func (c *memCatalog) FreeTables(restaurantID, partySize int) ([]models.Table, error) {
	var out []models.Table
	for _, t := range c.tables {
		if t.RestaurantID == restaurantID && t.IsAvailable && t.Capacity >= partySize {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (c *memCatalog) GetTable(id int) (*models.Table, error) {
	t, ok := c.tables[id]
	if !ok {
		return nil, errors.New("table not found")
	}
	return t, nil
}

func (c *memCatalog) SetTableAvailability(id int, available bool) error {
	t, ok := c.tables[id]
	if !ok {
		return errors.New("table not found")
	}
	t.IsAvailable = available
	return nil
}

func (c *memCatalog) InsertRestaurant(r models.Restaurant) error { return nil }
func (c *memCatalog) InsertTable(t models.Table) error           { return nil }
func (c *memCatalog) CountRestaurants() (int64, error)           { return int64(len(c.restaurants)), nil }

type memReservations struct {
	nextID int
	rows   map[int]*models.Reservation
}

func newMemReservations() *memReservations {
	return &memReservations{nextID: 1, rows: map[int]*models.Reservation{}}
}

func (r *memReservations) Insert(res models.Reservation) (int, error) {
	id := r.nextID
	r.nextID++
	res.ID = id
	res.Status = "confirmed"
	r.rows[id] = &res
	return id, nil
}

func (r *memReservations) GetByID(id int) (*models.Reservation, error) {
	res, ok := r.rows[id]
	if !ok {
		return nil, errors.New("reservation not found")
	}
	return res, nil
}

func (r *memReservations) Cancel(id int) (int, error) {
	res, ok := r.rows[id]
	if !ok || res.Status == "cancelled" {
		return 0, errors.New("reservation not found")
	}
	res.Status = "cancelled"
	return res.TableID, nil
}

func (r *memReservations) TableReserved(tableID int, date, timeStr string) (bool, error) {
	for _, res := range r.rows {
		if res.TableID == tableID && res.Date == date && res.Time == timeStr && res.Status == "confirmed" {
			return true, nil
		}
	}
	return false, nil
}

func (r *memReservations) MarkReminderSent(id int) error {
	if res, ok := r.rows[id]; ok {
		res.ReminderSent = true
	}
	return nil
}

type recordingScheduler struct {
	scheduled []models.Reservation
}

func (s *recordingScheduler) Schedule(res models.Reservation, restaurantName string) error {
	s.scheduled = append(s.scheduled, res)
	return nil
}

func newTestService() (*DefaultBookingService, *memCatalog, *memReservations, *recordingScheduler) {
	catalog := newMemCatalog()
	reservations := newMemReservations()
	scheduler := &recordingScheduler{}
	svc := &DefaultBookingService{
		Catalog:      catalog,
		Reservations: reservations,
		Reminders:    scheduler,
		Logger:       zap.NewNop(),
	}
	return svc, catalog, reservations, scheduler
}

func TestCheckAvailabilityPicksSmallestFittingTable(t *testing.T) {
	svc, _, _, _ := newTestService()

	result, err := svc.CheckAvailability(context.Background(), models.AvailabilityRequest{
		RestaurantID: 1, PartySize: 4, Date: "2026-09-02", Time: "19:00",
	})
	require.NoError(t, err)

	assert.True(t, result.Available)
	require.NotNil(t, result.SuggestedTableID)
	assert.Equal(t, 3, *result.SuggestedTableID, "first four-seater, not a bigger table")
	assert.Equal(t, 7, result.AvailableTables, "three four-seaters plus the larger tables")
}

func TestCheckAvailabilityValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		req  models.AvailabilityRequest
		want string
	}{
		{models.AvailabilityRequest{RestaurantID: 0, PartySize: 4, Date: "2026-09-02", Time: "19:00"}, "Invalid restaurant ID"},
		{models.AvailabilityRequest{RestaurantID: 1, PartySize: 0, Date: "2026-09-02", Time: "19:00"}, "Party size must be between 1 and 20"},
		{models.AvailabilityRequest{RestaurantID: 1, PartySize: 21, Date: "2026-09-02", Time: "19:00"}, "Party size must be between 1 and 20"},
		{models.AvailabilityRequest{RestaurantID: 1, PartySize: 4, Date: "", Time: "19:00"}, "Date is required"},
		{models.AvailabilityRequest{RestaurantID: 1, PartySize: 4, Date: "2026-09-02", Time: ""}, "Time is required"},
		{models.AvailabilityRequest{RestaurantID: 1, PartySize: 4, Date: "02-09-2026", Time: "19:00"}, "Invalid date or time format"},
		{models.AvailabilityRequest{RestaurantID: 1, PartySize: 4, Date: "2026-09-02", Time: "7pm"}, "Invalid date or time format"},
	}
	for _, tc := range cases {
		result, err := svc.CheckAvailability(context.Background(), tc.req)
		require.NoError(t, err, "validation failures are data, not errors")
		assert.False(t, result.Available)
		assert.Equal(t, tc.want, result.Error)
	}
}

func TestCheckAvailabilityNoTables(t *testing.T) {
	svc, catalog, _, _ := newTestService()
	for id := range catalog.tables {
		catalog.tables[id].IsAvailable = false
	}

	result, err := svc.CheckAvailability(context.Background(), models.AvailabilityRequest{
		RestaurantID: 1, PartySize: 2, Date: "2026-09-02", Time: "19:00",
	})
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "No tables available", result.Error)
}

func TestCheckAvailabilitySkipsReservedTables(t *testing.T) {
	svc, _, reservations, _ := newTestService()
	_, err := reservations.Insert(models.Reservation{
		TableID: 3, Date: "2026-09-02", Time: "19:00",
	})
	require.NoError(t, err)

	result, err := svc.CheckAvailability(context.Background(), models.AvailabilityRequest{
		RestaurantID: 1, PartySize: 4, Date: "2026-09-02", Time: "19:00",
	})
	require.NoError(t, err)
	require.NotNil(t, result.SuggestedTableID)
	assert.Equal(t, 4, *result.SuggestedTableID, "the reserved four-seater is passed over")
}

func TestCreateReservationHappyPath(t *testing.T) {
	svc, catalog, reservations, scheduler := newTestService()

	result, err := svc.CreateReservation(context.Background(), models.ReservationRequest{
		UserName: "John Smith", UserPhone: "9876543210",
		RestaurantID: 1, TableID: 3, PartySize: 4,
		Date: "2026-09-02", Time: "19:00",
	})
	require.NoError(t, err)

	require.True(t, result.Success, "error: %s", result.Error)
	require.NotNil(t, result.ReservationID)

	stored, err := reservations.GetByID(*result.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", stored.UserName)

	table, err := catalog.GetTable(3)
	require.NoError(t, err)
	assert.False(t, table.IsAvailable, "booked table leaves the free pool")

	require.Len(t, scheduler.scheduled, 1)
	assert.Equal(t, *result.ReservationID, scheduler.scheduled[0].ID)
}

func TestCreateReservationValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		name string
		req  models.ReservationRequest
		want string
	}{
		{"short name", models.ReservationRequest{UserName: "J", UserPhone: "9876543210", RestaurantID: 1, TableID: 3, PartySize: 4, Date: "2026-09-02", Time: "19:00"}, "Valid name is required"},
		{"short phone", models.ReservationRequest{UserName: "John", UserPhone: "12345", RestaurantID: 1, TableID: 3, PartySize: 4, Date: "2026-09-02", Time: "19:00"}, "Valid phone number is required"},
		{"bad table", models.ReservationRequest{UserName: "John", UserPhone: "9876543210", RestaurantID: 1, TableID: 0, PartySize: 4, Date: "2026-09-02", Time: "19:00"}, "Invalid table ID"},
	}
	for _, tc := range cases {
		result, err := svc.CreateReservation(context.Background(), tc.req)
		require.NoError(t, err, tc.name)
		assert.False(t, result.Success, tc.name)
		assert.Equal(t, tc.want, result.Error, tc.name)
	}
}

func TestCreateReservationRejectsDoubleBooking(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := models.ReservationRequest{
		UserName: "John Smith", UserPhone: "9876543210",
		RestaurantID: 1, TableID: 3, PartySize: 4,
		Date: "2026-09-02", Time: "19:00",
	}
	first, err := svc.CreateReservation(context.Background(), req)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := svc.CreateReservation(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, second.Success)
}
