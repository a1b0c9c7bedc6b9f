package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"dineflow/config"
	"dineflow/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReservationReminder = "reservation:reminder"

// Reminders fire this long before the reserved time.
const reminderLead = 2 * time.Hour

// ReminderScheduler enqueues reservation reminders on the asynq queue.
type ReminderScheduler struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewReminderScheduler(logger *zap.Logger) *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	return &ReminderScheduler{client: client, logger: logger}
}

// Schedule enqueues a reminder two hours before the reservation. Reservations
// closer than the lead time get no reminder.
func (s *ReminderScheduler) Schedule(res models.Reservation, restaurantName string) error {
	at, err := time.ParseInLocation("2006-01-02 15:04", res.Date+" "+res.Time, time.Local)
	if err != nil {
		return fmt.Errorf("reminder: bad reservation datetime: %w", err)
	}
	fireAt := at.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		s.logger.Debug("skipping reminder for near-term reservation", zap.Int("reservation_id", res.ID))
		return nil
	}

	payload := models.ReminderPayload{
		ReservationID:  res.ID,
		RestaurantName: restaurantName,
		UserName:       res.UserName,
		UserPhone:      res.UserPhone,
		Date:           res.Date,
		Time:           res.Time,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeReservationReminder, b)
	if _, err := s.client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("reminder: enqueue failed: %w", err)
	}
	return nil
}
