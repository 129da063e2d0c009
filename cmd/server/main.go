package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devillage/teamproject/backend/internal/repositories"
	"github.com/devillage/teamproject/backend/internal/router"
	"github.com/devillage/teamproject/backend/internal/validators"
	"github.com/devillage/teamproject/backend/pkg/broker"
	"github.com/devillage/teamproject/backend/pkg/config"
	"github.com/devillage/teamproject/backend/pkg/counter"
	"github.com/devillage/teamproject/backend/pkg/firebase"
	"github.com/devillage/teamproject/backend/pkg/logger"
	"github.com/devillage/teamproject/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize databases")
	}
	defer db.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize Firebase")
	}

	deps := router.Dependencies{
		Postgres:  db.Postgres,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	}
	if firebaseApp != nil {
		deps.FirebaseAuth = firebaseApp.AuthClient
		log.Info("Firebase sign-in enabled")
	}
	if db.Mongo != nil {
		deps.Activities = repositories.NewMongoActivityRepository(db.Mongo.Database(cfg.MongoDatabase))
	}

	if cfg.NatsURL != "" {
		nc, err := broker.Connect(cfg.NatsURL)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to NATS")
		}
		defer nc.Drain()
		deps.Events = broker.NewNatsPublisher(nc)
		log.WithField("url", cfg.NatsURL).Info("Publishing interaction events to NATS")
	}

	var flusher *counter.Flusher
	if db.Redis != nil {
		clicks := counter.NewRedisClickCounter(db.Redis)
		deps.Clicks = clicks
		flusher = counter.NewFlusher(clicks, repositories.NewPostgresPostRepository(db.Postgres), log)
		if err := flusher.Start(cfg.ClickFlushSpec); err != nil {
			log.WithError(err).Fatal("Failed to schedule click flush")
		}
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, log)

	if err := router.SetupRoutes(e, deps); err != nil {
		log.WithError(err).Fatal("Failed to set up routes")
	}

	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metrics.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server stopped")
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Metrics shutdown failed")
	}
	if flusher != nil {
		flusher.Stop(shutdownCtx)
	}
}
