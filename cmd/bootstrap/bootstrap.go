package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloodbank-backend/config"
	deliveryHttp "bloodbank-backend/internal/delivery/http"
	"bloodbank-backend/internal/delivery/http/handler"
	"bloodbank-backend/internal/delivery/http/middleware"
	"bloodbank-backend/internal/infrastructure/cache"
	"bloodbank-backend/internal/infrastructure/database"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/service"
	"bloodbank-backend/internal/usecase"
	"bloodbank-backend/pkg/jwt"
	"bloodbank-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before opening the pool
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, err
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	donorRepo := repository.NewDonorRepository()
	patientRepo := repository.NewPatientRepository()
	bookingRepo := repository.NewBookingRepository()
	donationRequestRepo := repository.NewDonationRequestRepository()
	bloodUnitRepo := repository.NewBloodUnitRepository()
	bloodRequestRepo := repository.NewBloodRequestRepository()
	notificationRepo := repository.NewNotificationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	emailService := service.NewEmailService(cfg.SMTP, log)
	dispatcher := service.NewNotificationDispatcher(log, notificationRepo, userRepo, emailService)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, donorRepo, jwtService, redisClient, auditService)
	donorUsecase := usecase.NewDonorUsecase(db, log, donorRepo, bookingRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	inventoryUsecase := usecase.NewInventoryUsecase(db, log, bloodUnitRepo, auditService)
	bloodRequestUsecase := usecase.NewBloodRequestUsecase(db, log, bloodRequestRepo, bloodUnitRepo, auditService, dispatcher)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, bookingRepo, donationRequestRepo, patientRepo, userRepo, bloodUnitRepo, dispatcher, auditService)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo, dispatcher)
	staffUsecase := usecase.NewStaffUsecase(db, log, userRepo, auditService)
	adminUsecase := usecase.NewAdminUsecase(db, log, userRepo, donorRepo, patientRepo, donationRequestRepo, auditLogRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	donorHandler := handler.NewDonorHandler(donorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	inventoryHandler := handler.NewInventoryHandler(inventoryUsecase, customValidator)
	bloodRequestHandler := handler.NewBloodRequestHandler(bloodRequestUsecase, customValidator)
	bloodbankHandler := handler.NewBloodbankHandler(appointmentUsecase, customValidator)
	staffHandler := handler.NewStaffHandler(staffUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		donorHandler,
		patientHandler,
		inventoryHandler,
		bloodRequestHandler,
		bloodbankHandler,
		staffHandler,
		notificationHandler,
		adminHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
