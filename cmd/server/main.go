package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lineup-service/internal/config"
	"lineup-service/internal/logging"
	"lineup-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "lineup-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to start server", logging.FieldError, err)
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
