// main.go
package main

import (
	"log"
	"time"

	"gym-management/cmd"
	"gym-management/internal/data/repository"
	"gym-management/internal/wire"
	"gym-management/pkg/database"
	"gym-management/pkg/mailer"
	"gym-management/pkg/ratelimit"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Email provider
	mail := mailer.New(config.Email, logger)

	// Per-IP OTP throttles
	window := time.Duration(config.RateLimit.WindowMinutes) * time.Minute
	limiters := &wire.Limiters{
		Send:   ratelimit.New(config.RateLimit.SendMax, window),
		Verify: ratelimit.New(config.RateLimit.VerifyMax, window),
	}
	defer limiters.Send.Stop()
	defer limiters.Verify.Stop()

	// Wire all dependencies
	app := wire.Wiring(repos, config, mail, limiters, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
