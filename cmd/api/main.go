package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/audit"
	"carbon-shop/marketplace-backend/internal/auth"
	"carbon-shop/marketplace-backend/internal/config"
	"carbon-shop/marketplace-backend/internal/logging"
	"carbon-shop/marketplace-backend/internal/notifications"
	"carbon-shop/marketplace-backend/internal/notifications/websocket"
	"carbon-shop/marketplace-backend/internal/orders"
	"carbon-shop/marketplace-backend/internal/projects"
	"carbon-shop/marketplace-backend/internal/questions"
	"carbon-shop/marketplace-backend/internal/server"
	"carbon-shop/marketplace-backend/internal/store"
	"carbon-shop/marketplace-backend/internal/users"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.RequireJWTSecret(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := store.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(db,
			&users.Company{}, &users.AppUser{},
			&projects.Project{}, &orders.Order{}, &questions.Question{},
		); err != nil {
			logger.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	// Event fan-out
	publisher := notifications.NewMultiPublisher(logger, notifications.NewLogPublisher(logger))

	var events *websocket.Manager
	if cfg.Notifications.WebSocket {
		events = websocket.NewManager(logger)
		defer events.Close()
		publisher.Add(events)
	}

	if cfg.Notifications.SNSTopicARN != "" {
		sns, err := notifications.NewSNSPublisherFromRegion(context.Background(), cfg.Notifications.AWSRegion, cfg.Notifications.SNSTopicARN)
		if err != nil {
			logger.Fatal("Failed to configure SNS publisher", zap.Error(err))
		}
		publisher.Add(sns)
		logger.Info("Publishing audit events to SNS", zap.String("topic_arn", cfg.Notifications.SNSTopicARN))
	}

	// Initialize modules
	orderRepo := orders.NewRepository(db)
	userRepo := users.NewRepository(db)
	projectRepo := projects.NewRepository(db)
	questionRepo := questions.NewRepository(db)

	auditService := audit.NewService(orderRepo, userRepo, projectRepo, questionRepo, publisher, logger)
	userService := users.NewService(userRepo, logger)
	projectService := projects.NewService(projectRepo, logger)
	tokens := auth.NewTokenService(cfg.Security.JWTSecret, cfg.Security.JWTIssuer)

	// Setup Router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(tokens, server.Handlers{
		Auth:     auth.NewHandler(),
		Users:    users.NewHandler(userService, logger),
		Projects: projects.NewHandler(projectService, logger),
		Audit:    audit.NewHandler(auditService, events, logger),
	}, logger)

	// Start Server
	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to listen", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("Server exiting")
}
