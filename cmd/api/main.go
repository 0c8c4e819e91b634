package main

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/fixitnow/fixitnow/config"
	"github.com/fixitnow/fixitnow/internal/db"
	"github.com/fixitnow/fixitnow/internal/db/repos"
	"github.com/fixitnow/fixitnow/internal/logger"
	"github.com/fixitnow/fixitnow/internal/services"
	"github.com/fixitnow/fixitnow/pkg/api/v1/handlers"
	"github.com/fixitnow/fixitnow/pkg/api/v1/routes"
)

func main() {
	// Load .env file if present; env vars win over defaults
	_ = godotenv.Load()

	logger.InitializeAndConfigure()

	// Connect to the database
	gormDB, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     config.GetEnvInt("DB_PORT", db.DefaultPort),
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Business configuration
	commissionRate := config.GetEnvFloat("COMMISSION_RATE", services.DefaultCommissionRate)

	// Create repositories
	jobRepo := repos.NewJobRepository(gormDB)
	userRepo := repos.NewUserRepository(gormDB)
	proRepo := repos.NewProfessionalRepository(gormDB)
	payoutRepo := repos.NewPayoutRepository(gormDB)
	reviewRepo := repos.NewReviewRepository(gormDB)
	notificationRepo := repos.NewNotificationRepository(gormDB)

	// Create services
	notifier := services.NewNotifier(notificationRepo)
	jobService := services.NewJobService(jobRepo, proRepo, notifier, services.JobConfig{
		CommissionRate: commissionRate,
	})
	payoutService := services.NewPayoutService(payoutRepo, proRepo, notifier)
	reviewService := services.NewReviewService(reviewRepo, jobRepo, proRepo)
	userService := services.NewUserService(userRepo)
	proService := services.NewProfessionalService(proRepo)

	// Create handlers
	api := handlers.NewAPIHandler(jobService, payoutService, reviewService, userService, proService, notifier)

	app := fiber.New(fiber.Config{
		AppName: "fixitnow-api",
	})
	app.Use(logger.APILogger())

	routes.RegisterRoutes(app,
		handlers.NewJobHandler(api),
		handlers.NewPaymentHandler(api),
		handlers.NewPayoutHandler(api),
		handlers.NewReviewHandler(api),
		handlers.NewUserHandler(api),
		handlers.NewProfessionalHandler(api),
		handlers.NewNotificationHandler(api),
	)

	port := config.GetEnv("PORT", routes.DefaultPort)
	logger.Infof("Starting API server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
