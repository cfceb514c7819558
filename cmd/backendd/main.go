package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/webstack/services/backend/internal/api"
	"github.com/webstack/services/backend/internal/config"
	"github.com/webstack/services/backend/internal/db"
	"github.com/webstack/services/backend/internal/events"
	grpcserver "github.com/webstack/services/backend/internal/grpc"
	"github.com/webstack/services/backend/internal/repo"
	"github.com/webstack/services/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("Backend service starting")

	// Connect to database. Exhausting the connect retries is fatal.
	log.Info("Connecting to database...",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)
	database, err := db.Connect(context.Background(), cfg.DSN(), log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Ensure the items table exists. Startup continues on failure; handlers
	// will then answer 500 until the schema is fixed.
	log.Info("Initializing items table...")
	if err := db.RunMigrations(database); err != nil {
		log.Error("Failed to initialize items table, continuing", zap.Error(err))
	}

	itemRepo := repo.NewItemRepository(database, log)

	// Event publishing is optional; the API runs without a broker.
	var publisher *events.Publisher
	if cfg.RabbitMQURL != "" {
		log.Info("Connecting to RabbitMQ")
		publisher, err = events.NewPublisher(cfg.RabbitMQURL, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, events disabled", zap.Error(err))
			publisher = nil
		}
	}
	if publisher != nil {
		defer publisher.Close()
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	var eventSink api.EventPublisher
	if publisher != nil {
		eventSink = publisher
	}
	apiServer := api.NewServer(itemRepo, eventSink, log, cfg.ServiceName, hostname)

	mux := http.NewServeMux()
	apiServer.Register(mux)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	// gRPC health probe for platform-native checks.
	grpcServer := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, grpcserver.NewHealthServer(itemRepo, log))
	reflection.Register(grpcServer)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCHealthPort))
	if err != nil {
		log.Fatal("Failed to listen on gRPC health port", zap.Error(err))
	}

	go func() {
		log.Info("Starting gRPC health server", zap.String("address", grpcListener.Addr().String()))
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal("Failed to serve gRPC", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	grpcServer.GracefulStop()

	log.Info("Server stopped")
}
