package cron

import (
	"context"
	"encoding/json"
	"log"

	"tripforge/config"
	recordsRepo "tripforge/database/repository/records"
	"tripforge/models"
	"tripforge/services/booking"
	"tripforge/utils"

	"github.com/hibiken/asynq"
)

// InitAnalyticsWorker runs the async analytics worker in background. It drains
// the fire-and-forget events the booking saga enqueues and persists them in
// the record store for later ingestion.
func InitAnalyticsWorker(store recordsRepo.Store) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(booking.TypeAnalyticsRecord, handleAnalyticsTask(store))

	go func() {
		log.Println("[AnalyticsWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[AnalyticsWorker] worker stopped: %v", err)
		}
	}()
}

func handleAnalyticsTask(store recordsRepo.Store) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var event models.AnalyticsEvent
		if err := json.Unmarshal(t.Payload(), &event); err != nil {
			return err
		}
		key := utils.AnalyticsKeyPrefix + event.BookingID
		if err := store.Set(ctx, key, t.Payload()); err != nil {
			return err
		}
		log.Printf("[AnalyticsWorker] recorded analytics for booking %s", event.BookingID)
		return nil
	}
}
