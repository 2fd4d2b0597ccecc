package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/courseplanner/internal/bootstrap"
	"github.com/yigit/courseplanner/internal/server"
)

// @title Course Planner API
// @version 1.0
// @description Degree planning: validate, add and remove courses on a student's plan
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		os.Exit(1)
	}

	srv, err := server.New(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		lgr.Error().Err(err).Msg("Server exited with errors")
		os.Exit(1)
	}
}
