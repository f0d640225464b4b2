package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/minsu/dormisphere/internal/pkg/logger"
	"github.com/minsu/dormisphere/internal/server"
)

// @title Dormisphere API
// @version 1.0
// @description Dormitory management backend: stay declarations, leave requests, QR room check-ins, notices, board posts, inquiries and merit points.

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name access_token
// @description Session token issued at login

func main() {
	// Local development overrides; missing file is fine
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
