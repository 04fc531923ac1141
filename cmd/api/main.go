package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JuanDluna/biosafe/internal/application/delivery"
	"github.com/JuanDluna/biosafe/internal/application/expiration"
	"github.com/JuanDluna/biosafe/internal/config"
	"github.com/JuanDluna/biosafe/internal/infrastructure/dynamo"
	jwtinfra "github.com/JuanDluna/biosafe/internal/infrastructure/jwt"
	snsinfra "github.com/JuanDluna/biosafe/internal/infrastructure/sns"
	"github.com/JuanDluna/biosafe/internal/scheduler"
	transporthttp "github.com/JuanDluna/biosafe/internal/transport/http"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	if err := godotenv.Load(); err != nil {
		zap.S().Info("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	medicineRepo := dynamo.NewMedicineRepo(dynamoClient, cfg.DynamoTables.Medicines)
	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	notificationRepo := dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications)

	// JWT provider (optional; without it, authenticated routes reject all callers).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		zap.S().Warnw("JWT provider not available", "err", err)
	}

	// SNS push sender.
	pushSender, err := snsinfra.NewSender(cfg)
	if err != nil {
		zap.S().Fatalw("SNS push sender not available", "err", err)
	}

	deliverySvc := delivery.NewService(delivery.ServiceDeps{
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		PushSender:       pushSender,
	})
	engine := expiration.NewService(expiration.ServiceDeps{
		MedicineRepo:     medicineRepo,
		NotificationRepo: notificationRepo,
		Delivery:         deliverySvc,
		SweepWindowDays:  cfg.SweepWindowDays,
	})

	sweepScheduler := scheduler.New(engine, cfg.SweepCron)
	sweepScheduler.Start()
	defer sweepScheduler.Stop()

	deps := &transporthttp.Deps{
		NotificationRepo: notificationRepo,
		JWTProvider:      jwtProvider,
		Delivery:         deliverySvc,
		Engine:           engine,
	}
	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.S().Infow("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalw("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.S().Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Fatalw("forced shutdown", "err", err)
	}
	zap.S().Info("server stopped")
}
