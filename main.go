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

	"github.com/masteryhub/mastery-hub-be/internal/api"
	"github.com/masteryhub/mastery-hub-be/internal/auth"
	"github.com/masteryhub/mastery-hub-be/internal/config"
	"github.com/masteryhub/mastery-hub-be/internal/database"
	"github.com/masteryhub/mastery-hub-be/internal/logger"
	"github.com/masteryhub/mastery-hub-be/internal/monitoring"
	"github.com/masteryhub/mastery-hub-be/internal/services"
	"github.com/masteryhub/mastery-hub-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the live activity feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	activityService := services.NewActivityService(db, hub)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Set up and run the background retention job
	retention := monitoring.NewRetentionJob(activityService, cfg.LogRetentionDays)
	if err := retention.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start retention job")
	}

	// Set up router
	router := api.NewRouter(cfg, db, hub, userService, activityService, tokens)

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

	retention.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
