package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// HoldStore places short-lived advisory holds on suggested tables so two
// conversations checking availability at the same moment are steered to
// different tables. Holds expire on their own; bookings never depend on them.
type HoldStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHoldStore(client *redis.Client, ttl time.Duration) *HoldStore {
	return &HoldStore{client: client, ttl: ttl}
}

func holdKey(tableID int, date, timeStr string) string {
	return fmt.Sprintf("hold:table:%d:%s:%s", tableID, date, timeStr)
}

// Place marks the table held for the configured TTL. Returns false when the
// table is already held.
func (h *HoldStore) Place(ctx context.Context, tableID int, date, timeStr string) (bool, error) {
	return h.client.SetNX(ctx, holdKey(tableID, date, timeStr), "1", h.ttl).Result()
}

// Held reports whether a hold exists for the table at the given slot.
func (h *HoldStore) Held(ctx context.Context, tableID int, date, timeStr string) (bool, error) {
	n, err := h.client.Exists(ctx, holdKey(tableID, date, timeStr)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Release drops the hold, typically right before the reservation is written.
func (h *HoldStore) Release(ctx context.Context, tableID int, date, timeStr string) error {
	return h.client.Del(ctx, holdKey(tableID, date, timeStr)).Err()
}
