package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "rentmatch-backend/internal/api/http"
	"rentmatch-backend/internal/config"
	"rentmatch-backend/internal/logger"
	"rentmatch-backend/internal/payments"
	"rentmatch-backend/internal/repository/postgres"
	"rentmatch-backend/internal/security"
	"rentmatch-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentMatch Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Payment Gateway
	gateway := payments.NewMockGateway()

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	bookingSvc := service.NewBookingAdminService(
		store.BookingRepository,
		store.RentPaymentRepository,
		store.ListingRepository,
		store.UserRepository,
		emailSvc,
		store.NotificationRepository,
	)
	listingSvc := service.NewListingAdminService(
		store.ListingRepository,
		store.UserRepository,
		emailSvc,
		store.NotificationRepository,
	)
	matchSvc := service.NewMatchService(
		store.MatchRepository,
		store.BookingRepository,
		store.TripRepository,
		store.ListingRepository,
		store.UserRepository,
		store.DocumentRepository,
		store.PaymentTransactionRepository,
		gateway,
		cfg.PricingFees(),
		emailSvc,
		store.NotificationRepository,
	)
	modSvc := service.NewModificationService(
		store.ModificationRepository,
		store.BookingRepository,
		store.RentPaymentRepository,
		store.ListingRepository,
		store.UserRepository,
		store.NotificationRepository,
	)
	docSvc := service.NewDocumentService(
		store.DocumentRepository,
		store.MatchRepository,
		store.ListingRepository,
		store.UserRepository,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		Bookings:      bookingSvc,
		Listings:      listingSvc,
		Matches:       matchSvc,
		Modifications: modSvc,
		Documents:     docSvc,
		Notifications: noteSvc,
	}, tokenManager, cfg.Places)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
