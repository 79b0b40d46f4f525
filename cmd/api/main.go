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
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/Debye-Igor/centro-paye-sistema/internal/config"
	"github.com/Debye-Igor/centro-paye-sistema/internal/email"
	"github.com/Debye-Igor/centro-paye-sistema/internal/handler"
	appointmentHandler "github.com/Debye-Igor/centro-paye-sistema/internal/handler/appointment"
	authHandler "github.com/Debye-Igor/centro-paye-sistema/internal/handler/auth"
	catalogHandler "github.com/Debye-Igor/centro-paye-sistema/internal/handler/catalog"
	patientHandler "github.com/Debye-Igor/centro-paye-sistema/internal/handler/patient"
	rescheduleHandler "github.com/Debye-Igor/centro-paye-sistema/internal/handler/reschedule"
	settingsHandler "github.com/Debye-Igor/centro-paye-sistema/internal/handler/settings"
	userHandler "github.com/Debye-Igor/centro-paye-sistema/internal/handler/user"
	"github.com/Debye-Igor/centro-paye-sistema/internal/middleware"
	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/repository/postgres"
	"github.com/Debye-Igor/centro-paye-sistema/internal/router"
	authService "github.com/Debye-Igor/centro-paye-sistema/internal/service/auth"
	catalogService "github.com/Debye-Igor/centro-paye-sistema/internal/service/catalog"
	patientService "github.com/Debye-Igor/centro-paye-sistema/internal/service/patient"
	"github.com/Debye-Igor/centro-paye-sistema/internal/service/schedule"
	userService "github.com/Debye-Igor/centro-paye-sistema/internal/service/user"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/auth"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/logger"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/messaging"
	redisBroker "github.com/Debye-Igor/centro-paye-sistema/pkg/messaging/redis"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/metrics"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/security"
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

	// Message broker is optional; without it events stay local.
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewRedisBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     10,
			MinIdleConns: 2,
		}, appLogger.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	var mailer email.Service = email.NoopService{}
	if cfg.SMTP.Enabled {
		mailer = email.NewSMTPService(cfg.SMTP)
	}

	appointmentRepo := postgres.NewAppointmentRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	userRepo := postgres.NewUserRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	m := metrics.NewMetrics("centro_paye")

	grid := schedule.NewGridGenerator(settingsRepo, model.OperatingHours{
		OpenTime:  cfg.Schedule.DefaultOpenTime,
		CloseTime: cfg.Schedule.DefaultCloseTime,
	}, appLogger)

	scheduleSvc := schedule.NewService(
		appointmentRepo,
		patientRepo,
		serviceRepo,
		userRepo,
		settingsRepo,
		grid,
		mailer,
		broker,
		m,
		appLogger,
	)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	patientSvc := patientService.NewService(patientRepo)
	catalogSvc := catalogService.NewService(serviceRepo)
	userSvc := userService.NewService(userRepo, hasher)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	handler.RegisterValidators()

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		appointmentHandler.NewHandler(scheduleSvc),
		rescheduleHandler.NewHandler(scheduleSvc),
		patientHandler.NewHandler(patientSvc),
		catalogHandler.NewHandler(catalogSvc),
		userHandler.NewHandler(userSvc),
		settingsHandler.NewHandler(scheduleSvc),
		handler.NewHealthHandler(db),
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:     cfg.Server.RateLimitBurst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "centro_paye_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLogger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
