package router

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/handlers"
	"teahouse_backend/internal/middleware"
	"teahouse_backend/internal/repositories"
	"teahouse_backend/internal/services"
	"teahouse_backend/pkg/utils"
)

// Setup initializes the routing for the application. notifier may be nil when
// receipt delivery is disabled.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, notifier services.ReceiptNotifier) {
	// Repositories
	menuRepo := repositories.NewMenuRepository(db)
	ingredientRepo := repositories.NewIngredientRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	userRepo := repositories.NewUserRepository(db)
	movementRepo := repositories.NewMovementRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Services
	issuer := utils.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	composer := services.NewComposer(cfg.Catalog)
	pricing := services.NewPricingEngine(cfg.Pricing, cfg.Catalog)

	authService := services.NewAuthService(employeeRepo, issuer)
	menuService := services.NewMenuService(db, menuRepo, ingredientRepo)
	employeeService := services.NewEmployeeService(db, employeeRepo)
	userService := services.NewUserService(db, userRepo)
	inventoryService := services.NewInventoryService(movementRepo)
	reportService := services.NewReportService(reportRepo, cfg.Pricing, cfg.Reports)
	orderService := services.NewOrderService(
		db, orderRepo, menuRepo, ingredientRepo, userRepo, movementRepo,
		composer, pricing, notifier, cfg.Pricing,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService, userService)
	staffHandler := handlers.NewStaffHandler(employeeService)
	reportHandler := handlers.NewReportHandler(reportService, inventoryService)

	api := engine.Group("/api")

	SetupPublicRoutes(api, authHandler, orderHandler)

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(issuer))

	SetupCashierRoutes(authenticated, menuHandler, orderHandler)
	SetupOrderRoutes(authenticated, orderHandler)
	SetupMenuRoutes(authenticated, menuHandler)
	SetupStaffRoutes(authenticated, staffHandler)
	SetupReportRoutes(authenticated, reportHandler)
}
