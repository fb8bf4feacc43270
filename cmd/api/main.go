package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/feedbackboard/backend/config"
	"github.com/feedbackboard/backend/internal/database"
	"github.com/feedbackboard/backend/internal/logging"
	"github.com/feedbackboard/backend/internal/server"
	"github.com/feedbackboard/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg)
	log.WithField("environment", cfg.Environment).Info("Configuration loaded")

	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}()

	if err := database.RunMigrations(db, cfg, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var avatars service.AvatarStorage
	if cfg.S3Enabled() {
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		avatars = s3Cfg
		log.WithField("bucket", cfg.S3BucketName).Info("Avatar uploads enabled")
	} else {
		log.Info("S3 not configured, avatar uploads disabled")
	}

	router := server.BuildRouter(server.Dependencies{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Avatars: avatars,
		Log:     log,
	})

	srv := server.NewServer(net.JoinHostPort(cfg.ServerHost, cfg.ServerPort), router, log)
	if err := srv.Start(ctx); err != nil {
		log.Errorf("Server error: %v", err)
		return
	}
	log.Info("Server stopped")
}
