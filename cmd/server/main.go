package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/application"
	"github.com/FieldShare-Rentals/service-rental/internal/config"
	"github.com/FieldShare-Rentals/service-rental/internal/database"
	bookingDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/booking"
	"github.com/FieldShare-Rentals/service-rental/internal/handler"
	"github.com/FieldShare-Rentals/service-rental/internal/health"
	"github.com/FieldShare-Rentals/service-rental/internal/identity"
	"github.com/FieldShare-Rentals/service-rental/internal/kafka"
	"github.com/FieldShare-Rentals/service-rental/internal/logger"
	"github.com/FieldShare-Rentals/service-rental/internal/middleware"
	"github.com/FieldShare-Rentals/service-rental/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.EquipmentModel{}, &repository.BookingModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize identity resolver
	resolver := identity.NewJWTResolver(cfg.JWTConfig.Secret, cfg.JWTConfig.Issuer)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	equipmentDir := repository.NewGormEquipmentDirectory(db)

	// Initialize pricing strategy
	pricing := bookingDomain.NewTieredPricingStrategy()

	// Initialize application services
	reservations := application.NewReservationService(bookingRepo, equipmentDir, pricing, kafkaProducer, log)
	lifecycle := application.NewLifecycleService(bookingRepo, equipmentDir, kafkaProducer, log)

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(reservations, lifecycle)
	adminHandler := handler.NewAdminBookingHandler(reservations)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-rental")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, resolver)
	adminHandler.RegisterRoutes(&router.RouterGroup, resolver)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
