package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hms-backend/hms-api/config"
	appointmentHandler "github.com/hms-backend/hms-api/internal/handler/appointment"
	authHandler "github.com/hms-backend/hms-api/internal/handler/auth"
	healthHandler "github.com/hms-backend/hms-api/internal/handler/health"
	hospitalHandler "github.com/hms-backend/hms-api/internal/handler/hospital"
	patientHandler "github.com/hms-backend/hms-api/internal/handler/patient"
	paymentHandler "github.com/hms-backend/hms-api/internal/handler/payment"
	reviewHandler "github.com/hms-backend/hms-api/internal/handler/review"
	staffHandler "github.com/hms-backend/hms-api/internal/handler/staff"
	"github.com/hms-backend/hms-api/internal/middleware"
	"github.com/hms-backend/hms-api/internal/repository/postgres"
	"github.com/hms-backend/hms-api/internal/router"
	authService "github.com/hms-backend/hms-api/internal/service/auth"
	hospitalService "github.com/hms-backend/hms-api/internal/service/hospital"
	"github.com/hms-backend/hms-api/internal/service/notification"
	"github.com/hms-backend/hms-api/internal/service/otp"
	patientService "github.com/hms-backend/hms-api/internal/service/patient"
	paymentService "github.com/hms-backend/hms-api/internal/service/payment"
	reviewService "github.com/hms-backend/hms-api/internal/service/review"
	"github.com/hms-backend/hms-api/internal/service/rbac"
	"github.com/hms-backend/hms-api/internal/service/scheduler"
	staffService "github.com/hms-backend/hms-api/internal/service/staff"
	"github.com/hms-backend/hms-api/pkg/auth"
	"github.com/hms-backend/hms-api/pkg/logger"
	"github.com/hms-backend/hms-api/pkg/messaging/redis"
	"github.com/hms-backend/hms-api/pkg/metrics"
	"github.com/hms-backend/hms-api/pkg/payment"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

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

	m := metrics.NewMetrics("hms")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	unavailRepo := postgres.NewUnavailabilityRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	leaveRepo := postgres.NewLeaveRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	recordRepo := postgres.NewMedicalRecordRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	rbacSvc := rbac.NewService()
	notifier := notification.NewService(broker, m)
	otpStore := otp.NewStore(otp.DefaultTTL)
	authSvc := authService.NewService(userRepo, jwtSvc, otpStore, notifier)
	schedulerSvc := scheduler.NewService(appointmentRepo, unavailRepo, leaveRepo, userRepo, notifier, m)
	staffSvc := staffService.NewService(userRepo, unavailRepo, leaveRepo)
	patientSvc := patientService.NewService(userRepo, recordRepo)
	hospitalSvc := hospitalService.NewService(hospitalRepo)
	reviewSvc := reviewService.NewService(reviewRepo, userRepo)
	gateway := payment.NewClient(payment.Config{
		BaseURL: cfg.Payment.BaseURL,
		APIKey:  cfg.Payment.APIKey,
		Timeout: cfg.Payment.Timeout,
	})
	paymentSvc := paymentService.NewService(gateway, invoiceRepo, appointmentRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, rbacSvc)
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		appointmentHandler.NewHandler(schedulerSvc),
		staffHandler.NewHandler(staffSvc, schedulerSvc),
		patientHandler.NewHandler(patientSvc),
		hospitalHandler.NewHandler(hospitalSvc),
		reviewHandler.NewHandler(reviewSvc),
		paymentHandler.NewHandler(paymentSvc),
		healthHandler.NewHandler(db),
		m,
		router.Config{
			RateLimit:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
