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

	"github.com/avelarm/taskbox-be/internal/api"
	"github.com/avelarm/taskbox-be/internal/auth"
	"github.com/avelarm/taskbox-be/internal/config"
	"github.com/avelarm/taskbox-be/internal/database"
	"github.com/avelarm/taskbox-be/internal/logger"
	"github.com/avelarm/taskbox-be/internal/maintenance"
	"github.com/avelarm/taskbox-be/internal/metrics"
	"github.com/avelarm/taskbox-be/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, auditService)
	itemService := services.NewItemService(db, auditService)

	// Set up and run the background audit pruner
	pruner := maintenance.NewPruner(auditService, cfg.AuditRetention)
	go pruner.Run()

	// Set up router
	m := metrics.New()
	router := api.NewRouter(db, tokens, userService, itemService, m, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
