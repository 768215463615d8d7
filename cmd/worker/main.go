package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/hms-backend/hms-api/config"
	"github.com/hms-backend/hms-api/internal/email"
	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/notification"
	"github.com/hms-backend/hms-api/pkg/logger"
	"github.com/hms-backend/hms-api/pkg/messaging/redis"
)

// The worker drains the notification channel and delivers email. It is
// the only process that talks SMTP; the API only publishes.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	mailer := email.NewSMTPService(cfg.SMTP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := broker.Subscribe(ctx, notification.Channel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to subscribe to notification channel")
	}

	go func() {
		for payload := range messages {
			var n model.Notification
			if err := json.Unmarshal(payload, &n); err != nil {
				log.Error().Err(err).Msg("failed to decode notification")
				continue
			}

			if err := mailer.Send(n.To, n.Subject, n.Body); err != nil {
				log.Error().Err(err).
					Str("to", n.To).
					Str("subject", n.Subject).
					Msg("failed to deliver email")
				continue
			}
			log.Info().Str("to", n.To).Str("subject", n.Subject).Msg("email delivered")
		}
	}()

	log.Info().Msg("notification worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")
}
