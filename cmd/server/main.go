package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alanya-estates/property-service/internal/adapter/httpapi"
	"github.com/alanya-estates/property-service/internal/adapter/messaging/nats"
	"github.com/alanya-estates/property-service/internal/adapter/repository/cache"
	"github.com/alanya-estates/property-service/internal/adapter/repository/mongodb"
	"github.com/alanya-estates/property-service/internal/adapter/storage/local"
	"github.com/alanya-estates/property-service/internal/adapter/storage/s3"
	"github.com/alanya-estates/property-service/internal/config"
	"github.com/alanya-estates/property-service/internal/mailer"
	"github.com/alanya-estates/property-service/internal/platform/logger"
	"github.com/alanya-estates/property-service/internal/platform/tracer"
	"github.com/alanya-estates/property-service/internal/property/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger()

	tp := tracer.InitTracer("property-service")
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Warn("Failed to shut down tracer provider", "error", err.Error())
		}
	}()

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDB)

	propertyRepo := mongodb.NewPropertyRepository(db)

	var (
		assetStorage usecase.Storage
		uploadsDir   string
	)
	switch cfg.StorageDriver {
	case config.StorageDriverS3:
		assetStorage, err = s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	default:
		localStorage, err := local.NewLocalStorage(cfg.UploadDir, appLogger)
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		assetStorage = localStorage
		uploadsDir = localStorage.Dir()
	}

	propertyCache, err := cache.NewPropertyCache(cfg.RedisAddress)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer propertyCache.Close()

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to initialize NATS: %v", err)
	}
	defer publisher.Close()

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)

	propertyUsecase := usecase.NewPropertyUsecase(propertyRepo, assetStorage, propertyCache, publisher, smtpMailer, cfg.AdminEmail, appLogger)
	handler := httpapi.NewPropertyHandler(propertyUsecase, appLogger)
	router := httpapi.NewRouter(handler, httpapi.RouterOptions{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		UploadsDir:     uploadsDir,
	}, appLogger)

	server := httpapi.NewServer(cfg.HTTPPort, router, appLogger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Info("Shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			appLogger.Error("Failed to stop HTTP server gracefully", "error", err.Error())
		}
	}
}
