package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teahouse_backend/internal/middleware"
	"teahouse_backend/internal/models"
	"teahouse_backend/internal/services"
	"teahouse_backend/pkg/utils"
)

// OrderHandler holds the order and user services.
type OrderHandler struct {
	orderService *services.OrderService
	userService  *services.UserService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os *services.OrderService, us *services.UserService) *OrderHandler {
	return &OrderHandler{orderService: os, userService: us}
}

// PlaceCustomerOrder handles the self-service checkout: the cart is priced
// server side and persisted atomically.
func (h *OrderHandler) PlaceCustomerOrder(c *gin.Context) {
	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	result, err := h.orderService.PlaceOrder(req)
	if err != nil {
		utils.LogError(err, "PlaceCustomerOrder: Error from orderService.PlaceOrder")
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

type upsertUserRequest struct {
	Email string `json:"email" binding:"required"`
}

// UpsertUser finds or creates a loyalty account by email.
func (h *OrderHandler) UpsertUser(c *gin.Context) {
	var req upsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	user, err := h.userService.UpsertByEmail(req.Email)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type cashierOrderRequest struct {
	Cost          float64 `json:"cost" binding:"required"`
	EmployeeID    int64   `json:"employee_id"`
	PaymentMethod string  `json:"payment_method"`
}

// CreateCashierOrder inserts a pre-priced order header from the terminal.
func (h *OrderHandler) CreateCashierOrder(c *gin.Context) {
	var req cashierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	employeeID := req.EmployeeID
	if id, ok := middleware.EmployeeID(c); ok {
		employeeID = id
	}

	orderID, err := h.orderService.CreateCashierOrder(req.Cost, employeeID, req.PaymentMethod)
	if err != nil {
		utils.LogError(err, "CreateCashierOrder: Error from orderService.CreateCashierOrder")
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": orderID})
}

type drinkOrderRequest struct {
	MenuID  int64 `json:"menu_id" binding:"required"`
	OrderID int64 `json:"order_id" binding:"required"`
}

// AddDrinkToOrder links a drink to an order and decrements menu stock.
func (h *OrderHandler) AddDrinkToOrder(c *gin.Context) {
	var req drinkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	drinkID, err := h.orderService.AddDrinkToOrder(req.MenuID, req.OrderID)
	if err != nil {
		utils.LogError(err, "AddDrinkToOrder: Error from orderService.AddDrinkToOrder")
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": drinkID})
}

type drinkIngredientRequest struct {
	DrinkID      int64 `json:"drink_id" binding:"required"`
	IngredientID int64 `json:"ingredient_id" binding:"required"`
	Servings     int   `json:"servings"`
}

// AddIngredientToDrink records a consumed customization on a drink.
func (h *OrderHandler) AddIngredientToDrink(c *gin.Context) {
	var req drinkIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	if req.Servings == 0 {
		req.Servings = 1
	}

	id, err := h.orderService.AddIngredientToDrink(req.DrinkID, req.IngredientID, req.Servings)
	if err != nil {
		utils.LogError(err, "AddIngredientToDrink: Error from orderService.AddIngredientToDrink")
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetOrders lists orders, optionally filtered by status, employee or date.
// The kitchen display passes order_status and receives nested drinks.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid query parameters", err.Error()))
		return
	}
	if filters.Status != nil && !filters.Status.Valid() {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid order status", string(*filters.Status)))
		return
	}

	orders, err := h.orderService.GetKitchenOrders(filters)
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService.GetKitchenOrders")
		utils.RespondWithServiceError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order with its drinks materialized.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid order id", err.Error()))
		return
	}

	order, err := h.orderService.GetOrderWithDrinks(id)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	OrderStatus models.OrderStatus `json:"order_status" binding:"required"`
}

// UpdateOrderStatus writes an explicit pipeline state.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid order id", err.Error()))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	if !req.OrderStatus.Valid() {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid order status", string(req.OrderStatus)))
		return
	}

	if err := h.orderService.SetOrderStatus(id, req.OrderStatus); err != nil {
		utils.LogError(err, "UpdateOrderStatus: Error from orderService.SetOrderStatus")
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "order_status": req.OrderStatus})
}

// AdvanceOrder moves an order one step along the pipeline.
func (h *OrderHandler) AdvanceOrder(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid order id", err.Error()))
		return
	}

	status, err := h.orderService.AdvanceOrder(id)
	if err != nil {
		utils.LogError(err, "AdvanceOrder: Error from orderService.AdvanceOrder")
		utils.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "order_status": status})
}
