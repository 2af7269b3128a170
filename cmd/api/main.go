package main

import (
	"context"
	"os"

	"github.com/qmc/portal/internal/pkg/logger" // Still needed for initial error logging
	"github.com/qmc/portal/internal/server"
)

// @title Queen Marvellous College Portal API
// @version 1.0
// @description API behind the Queen Marvellous College site, admissions portal and admin console

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin console session token

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	ctx := context.Background()

	srv, err := server.NewServer(ctx, configPath)
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
