package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fundtrack/internal/adapters/http/middleware"
	"fundtrack/internal/adapters/http/routes"
	"fundtrack/internal/adapters/persistence/models"
	"fundtrack/internal/adapters/persistence/repositories"
	"fundtrack/internal/config"
	"fundtrack/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	_ "fundtrack/docs" // Swagger docs
)

// @title FDS Fund Tracker API
// @version 1.0
// @description Member contribution fund tracking API with payment verification
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@fds.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Amounts serialize as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the default accountant (and sample data in dev)
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Monthly dues accrual
	if cfg.Accrual.Enabled {
		accrualService := services.NewAccrualService(repositories.NewMemberRepository(db), cfg.Accrual.Spec)
		if err := accrualService.Start(); err != nil {
			log.Fatalf("❌ Failed to start accrual scheduler: %v", err)
		}
		defer accrualService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FDS Fund Tracker API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
