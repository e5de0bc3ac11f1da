package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/Abdurahmanit/GroupProject/product-service/internal/adapter/http"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/adapter/repository/cache"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/mailer"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	tp := tracer.InitTracer()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", "error", err.Error())
		}
	}()

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	if err := mongoClient.Ping(context.Background(), nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := mongoClient.Database(cfg.MongoDBName)

	productRepo := mongodb.NewProductRepository(db, appLogger)
	if err := productRepo.EnsureIndexes(context.Background()); err != nil {
		appLogger.Warn("Failed to ensure product indexes", "error", err.Error())
	}
	sellerRepo := mongodb.NewSellerRepository(db, appLogger)
	categoryRepo := mongodb.NewCategoryRepository(db, appLogger)
	orderRepo := mongodb.NewOrderDetailsRepository(db, appLogger)

	productCache, err := cache.NewProductCache(cfg.RedisAddress)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	storageClient, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	natsPublisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to initialize NATS: %v", err)
	}
	defer natsPublisher.Close()

	moderationMailer := mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)

	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, orderRepo, storageClient, productCache, natsPublisher, appLogger)
	moderationUC := usecase.NewModerationUsecase(productRepo, sellerRepo, productCache, natsPublisher, moderationMailer, appLogger)

	handler := httpadapter.NewProductHandler(productUC, moderationUC, appLogger)
	router := httpadapter.NewRouter(handler, cfg.JWTSecret, appLogger)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("Starting HTTP server", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err.Error())
	}
}
