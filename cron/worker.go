package cron

import (
	"context"
	"encoding/json"

	"dineflow/config"
	reservationRepo "dineflow/database/repository/reservation"
	"dineflow/models"
	"dineflow/services/tasks"
	"dineflow/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the reservation-reminder worker in the background.
func InitReminderWorker(repo reservationRepo.ReservationRepository) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderDB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{"default": 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReservationReminder, handleReminderTask(repo, logger))

	go func() {
		logger.Info("starting reservation reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleReminderTask(repo reservationRepo.ReservationRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		// Delivery channel is out of scope here; the reminder is recorded and
		// logged for the notification pipeline to pick up.
		logger.Info("reservation reminder due",
			zap.Int("reservation_id", p.ReservationID),
			zap.String("restaurant", p.RestaurantName),
			zap.String("user", p.UserName),
			zap.String("date", p.Date),
			zap.String("time", p.Time),
		)
		if err := repo.MarkReminderSent(p.ReservationID); err != nil {
			logger.Error("failed to mark reminder sent", zap.Int("reservation_id", p.ReservationID), zap.Error(err))
			return err
		}
		return nil
	}
}
