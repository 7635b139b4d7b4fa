// File: cmd/federation-service/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/apurv-1/RC4Community/internal/config"
	"github.com/apurv-1/RC4Community/internal/events/kafka"
	httpHandler "github.com/apurv-1/RC4Community/internal/handler/http"
	"github.com/apurv-1/RC4Community/internal/handler/http/middleware"
	"github.com/apurv-1/RC4Community/internal/infrastructure/database"
	infraPostgres "github.com/apurv-1/RC4Community/internal/infrastructure/database/postgres"
	"github.com/apurv-1/RC4Community/internal/infrastructure/github"
	"github.com/apurv-1/RC4Community/internal/infrastructure/ledger"
	"github.com/apurv-1/RC4Community/internal/infrastructure/rocketchat"
	"github.com/apurv-1/RC4Community/internal/infrastructure/security"
	"github.com/apurv-1/RC4Community/internal/service"
	"github.com/apurv-1/RC4Community/internal/utils/logger"
	"github.com/apurv-1/RC4Community/internal/utils/rate"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if cfg.Database.AutoMigrate {
		log.Info("Running database migrations")
		migrationURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Database.User, cfg.Database.Password, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
		m, err := migrate.New("file://migrations", migrationURL)
		if err != nil {
			log.Fatal("Failed to create migration instance", zap.Error(err))
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
		log.Info("Migrations applied successfully")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := infraPostgres.NewDBPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize PostgreSQL connection pool", zap.Error(err))
	}
	defer dbPool.Close()

	var redisClient *redis.Client
	var limiter middleware.RateLimiter
	if cfg.Security.LoginIPLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		limiter = rate.NewLimiter(redisClient, log)
	}

	var producer *kafka.Producer
	var events service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Producer.Topic, log)
		if err != nil {
			log.Fatal("Failed to initialize Kafka producer", zap.Error(err))
		}
		defer producer.Close()
		events = producer
	}

	userRepo := database.NewPgxUserRepository(dbPool)
	credentialLedger := ledger.NewFileLedger(cfg.Ledger.Path)
	encryptionService := security.NewAESGCMEncryptionService()
	jwtService := security.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	githubClient := github.NewClient(cfg.GitHub, log)
	rocketchatClient := rocketchat.NewClient(cfg.RocketChat, log)

	federationService := service.NewFederationService(
		githubClient,
		rocketchatClient,
		userRepo,
		credentialLedger,
		encryptionService,
		jwtService,
		events,
		cfg.Security,
		log,
	)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Federation:  federationService,
		Repos:       githubClient,
		Members:     rocketchatClient,
		DB:          dbPool,
		Redis:       redisClient,
		RateLimiter: limiter,
		Config:      cfg,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
