package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-room-notify/internal/application/events"
	"github.com/go-room-notify/internal/application/notify"
	"github.com/go-room-notify/internal/application/push"
	"github.com/go-room-notify/internal/application/sweep"
	"github.com/go-room-notify/internal/config"
	"github.com/go-room-notify/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-room-notify/internal/infrastructure/jwt"
	"github.com/go-room-notify/internal/infrastructure/logger"
	"github.com/go-room-notify/internal/infrastructure/scheduler"
	snsinfra "github.com/go-room-notify/internal/infrastructure/sns"
	"github.com/go-room-notify/internal/infrastructure/stream"
	transporthttp "github.com/go-room-notify/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	logger.Init(cfg)
	log := logger.Log

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	deviceRepo := dynamo.NewDeviceRepo(dynamoClient, cfg.DynamoTables.Devices)
	notifRepo := dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications)
	membershipRepo := dynamo.NewMembershipRepo(dynamoClient, cfg.DynamoTables.Memberships)
	bookingRepo := dynamo.NewBookingRepo(dynamoClient, cfg.DynamoTables.Bookings)

	gateway, err := snsinfra.NewGateway(cfg)
	if err != nil {
		log.Fatalf("push gateway: %v", err)
	}

	dispatcher := push.NewDispatcher(deviceRepo, gateway, log)
	notifier := notify.NewService(userRepo, notifRepo, dispatcher, cfg.DefaultLanguage, log)
	eventSvc := events.NewService(notifier, membershipRepo, log)
	sweepSvc := sweep.NewService(bookingRepo, notifier, log)

	// Sweep jobs on their cron periods.
	sched := scheduler.New(sweepSvc, cfg, log)
	if err := sched.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	// Mutation triggers from table streams.
	pollCtx, cancelPoll := context.WithCancel(context.Background())
	defer cancelPoll()
	if cfg.StreamEnabled {
		poller := stream.NewPoller(dynamoClient, stream.NewStreamsClient(cfg), eventSvc, cfg, log)
		poller.Run(pollCtx)
	}

	// JWT provider is optional: without keys the client API runs
	// unauthenticated, for local development only.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Warnf("JWT provider not available: %v", err)
	}

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		DeviceRepo:       deviceRepo,
		NotificationRepo: notifRepo,
		JWTProvider:      jwtProvider,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("client API listening on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	cancelPoll()
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Info("stopped")
}
