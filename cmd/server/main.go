package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/carena-app/backend/internal/ai"
	"github.com/carena-app/backend/internal/mailer"
	"github.com/carena-app/backend/internal/router"
	"github.com/carena-app/backend/internal/storage"
	"github.com/carena-app/backend/pkg/config"
	"github.com/carena-app/backend/pkg/firebase"
	"github.com/carena-app/backend/pkg/logger"
	"github.com/carena-app/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Log = logger.NewLogger(cfg.Env)
	defer logger.Log.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Log.Fatal("failed to initialize Firebase", zap.Error(err))
	}

	// Object storage and outbound services
	s3, err := storage.NewS3Storage(ctx, cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		logger.Log.Fatal("failed to initialize object storage", zap.Error(err))
	}
	mail := mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	completer, err := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		logger.Log.Fatal("failed to initialize AI client", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	partitionSched, err := router.SetupRoutes(e, cfg, db, firebaseApp.AuthClient, s3, mail, completer)
	if err != nil {
		logger.Log.Fatal("failed to set up routes", zap.Error(err))
	}

	// Monthly notification partition provisioning
	partitionSched.Start()
	defer partitionSched.Stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
