package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"impostor-server/internal/config"
	"impostor-server/internal/logger"
	"impostor-server/internal/server"
)

func gracefulShutdown(customServer *server.Server, httpServer *http.Server, timeout time.Duration, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("Shutdown signal received, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Notify rooms and drain the archive before the listener goes away.
	if err := customServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during custom shutdown")
	}

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server forced to shutdown")
	}

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	customServer, httpServer, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(customServer, httpServer, cfg.ShutdownTimeout, done)

	log.Info().
		Str("addr", httpServer.Addr).
		Bool("archive", cfg.ArchiveEnabled()).
		Dur("countdown", cfg.Countdown).
		Msg("Impostor server listening")

	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("HTTP server error")
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
