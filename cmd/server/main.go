package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/config"
	"github.com/arnavshah/crewplan-api/pkg/database"
	"github.com/arnavshah/crewplan-api/pkg/events"
	"github.com/arnavshah/crewplan-api/pkg/handlers"
	"github.com/arnavshah/crewplan-api/pkg/logging"
	"github.com/arnavshah/crewplan-api/pkg/seed"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load .env if it exists
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	data, err := seed.Load(cfg.SeedPath)
	if err != nil {
		logger.Fatal("Failed to load seed data", zap.Error(err))
	}

	s, closeDB, err := database.OpenStore(cfg, data, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeDB()

	pub, err := events.New(cfg.AMQPURL, logger)
	if err != nil {
		logger.Fatal("Failed to connect event publisher", zap.Error(err))
	}
	defer pub.Close()

	h := handlers.New(s, pub, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go h.SweepGestures(ctx, time.Minute, 10*time.Minute)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.Router(),
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Could not run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
