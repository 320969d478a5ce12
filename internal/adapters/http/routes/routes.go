package routes

import (
	"fundtrack/internal/adapters/http/handlers"
	"fundtrack/internal/adapters/http/middleware"
	"fundtrack/internal/adapters/persistence/repositories"
	"fundtrack/internal/config"
	"fundtrack/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	memberService := services.NewMemberService(memberRepo, userRepo)
	paymentService := services.NewPaymentService(db, paymentRepo, memberRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public, rate limited)
	authRoutes := app.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)

	// Accountant routes
	accountantRoutes := app.Group("/accountant")
	accountantRoutes.Use(middleware.AuthMiddleware(cfg))
	accountantRoutes.Use(middleware.AccountantOnly())
	setupAccountantRoutes(accountantRoutes, memberHandler, paymentHandler, dashboardHandler)

	// Member routes
	memberRoutes := app.Group("/member")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	memberRoutes.Use(middleware.MemberOnly())
	setupMemberRoutes(memberRoutes, memberHandler, paymentHandler)
}

// setupAccountantRoutes configures member management and payment verification routes
func setupAccountantRoutes(
	router fiber.Router,
	memberHandler *handlers.MemberHandler,
	paymentHandler *handlers.PaymentHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	// Member management
	router.Get("/members", memberHandler.List)
	router.Post("/members", memberHandler.Create)
	router.Delete("/members/:id", memberHandler.Delete)

	// Payment verification
	router.Get("/payments", paymentHandler.List)
	router.Patch("/payments/:id", paymentHandler.Verify)

	// Dashboard
	router.Get("/dashboard", dashboardHandler.GetDashboard)
}

// setupMemberRoutes configures the member self-service routes
func setupMemberRoutes(
	router fiber.Router,
	memberHandler *handlers.MemberHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	router.Get("/profile", memberHandler.GetProfile)
	router.Get("/payments", paymentHandler.ListMine)
	router.Post("/payments", paymentHandler.Submit)
}
