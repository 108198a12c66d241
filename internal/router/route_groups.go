package router

import (
	"github.com/gin-gonic/gin"

	"teahouse_backend/internal/handlers"
	"teahouse_backend/internal/middleware"
)

// SetupPublicRoutes sets up routes that need no session: PIN login and the
// customer self-service kiosk.
func SetupPublicRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, orderHandler *handlers.OrderHandler) {
	apiGroup.POST("/login", authHandler.Login)

	customerRoutes := apiGroup.Group("/customer")
	{
		customerRoutes.POST("/order", orderHandler.PlaceCustomerOrder)
		customerRoutes.POST("/user", orderHandler.UpsertUser)
	}
}

// SetupCashierRoutes sets up the cashier terminal routes.
func SetupCashierRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler, orderHandler *handlers.OrderHandler) {
	cashierRoutes := authenticatedGroup.Group("/cashier")
	cashierRoutes.Use(middleware.RoleAuthMiddleware("manager", "cashier"))
	{
		cashierRoutes.GET("/categories", menuHandler.GetCategories)
		cashierRoutes.GET("/menu_by_category", menuHandler.GetMenuByCategory)
		cashierRoutes.POST("/order", orderHandler.CreateCashierOrder)
		cashierRoutes.POST("/drinks_order", orderHandler.AddDrinkToOrder)
		cashierRoutes.POST("/drink_ingredients", orderHandler.AddIngredientToDrink)
	}
}

// SetupOrderRoutes sets up the kitchen pipeline routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	orderRoutes.Use(middleware.RoleAuthMiddleware("manager", "cashier"))
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrder)
		orderRoutes.PATCH("/:id", orderHandler.UpdateOrderStatus)
		orderRoutes.POST("/:id/advance", orderHandler.AdvanceOrder)
	}
}

// SetupMenuRoutes sets up the catalog management routes.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := authenticatedGroup.Group("/menu")
	menuRoutes.Use(middleware.RoleAuthMiddleware("manager"))
	{
		menuRoutes.GET("", menuHandler.GetMenuItems)
		menuRoutes.GET("/:id", menuHandler.GetMenuItem)
		menuRoutes.POST("", menuHandler.CreateMenuItem)
		menuRoutes.PUT("/:id", menuHandler.UpdateMenuItem)
		menuRoutes.DELETE("/:id", menuHandler.DeleteMenuItem)
	}

	ingredientRoutes := authenticatedGroup.Group("/ingredient")
	ingredientRoutes.Use(middleware.RoleAuthMiddleware("manager"))
	{
		ingredientRoutes.GET("", menuHandler.GetIngredients)
		ingredientRoutes.GET("/:id", menuHandler.GetIngredient)
		ingredientRoutes.POST("", menuHandler.CreateIngredient)
		ingredientRoutes.PUT("/:id", menuHandler.UpdateIngredient)
		ingredientRoutes.DELETE("/:id", menuHandler.DeleteIngredient)
	}
}

// SetupStaffRoutes sets up the employee management routes.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/employees")
	staffRoutes.Use(middleware.RoleAuthMiddleware("manager"))
	{
		staffRoutes.GET("", staffHandler.GetEmployees)
		staffRoutes.GET("/:id", staffHandler.GetEmployee)
		staffRoutes.POST("", staffHandler.CreateEmployee)
		staffRoutes.PUT("/:id", staffHandler.UpdateEmployee)
		staffRoutes.DELETE("/:id", staffHandler.DeleteEmployee)
	}
}

// SetupReportRoutes sets up the back-office report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware("manager"))
	{
		reportRoutes.GET("/restock", reportHandler.Restock)
		reportRoutes.GET("/sales", reportHandler.Sales)
		reportRoutes.GET("/usage", reportHandler.Usage)
		reportRoutes.GET("/x", reportHandler.XReport)
		reportRoutes.GET("/z", reportHandler.ZReport)
	}

	inventoryRoutes := authenticatedGroup.Group("/inventory")
	inventoryRoutes.Use(middleware.RoleAuthMiddleware("manager"))
	{
		inventoryRoutes.GET("/movements", reportHandler.GetMovements)
	}
}
