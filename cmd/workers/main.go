package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/config"
	"carbon-shop/marketplace-backend/internal/digest"
	"carbon-shop/marketplace-backend/internal/logging"
	"carbon-shop/marketplace-backend/internal/notifications"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := digest.Connect(ctx, cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Connected to database")

	publisher := notifications.NewMultiPublisher(logger)
	if cfg.Notifications.SNSTopicARN != "" {
		sns, err := notifications.NewSNSPublisherFromRegion(ctx, cfg.Notifications.AWSRegion, cfg.Notifications.SNSTopicARN)
		if err != nil {
			logger.Fatal("Failed to configure SNS publisher", zap.Error(err))
		}
		publisher.Add(sns)
	}

	worker := digest.NewWorker(digest.NewSQLCounter(db), publisher, cfg.Worker.DigestSchedule, logger)
	if err := worker.Start(ctx); err != nil {
		logger.Fatal("Failed to start digest worker", zap.Error(err))
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received")
	worker.Stop()
}
