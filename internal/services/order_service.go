package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

// Receipt is the customer-facing order summary handed to the notifier.
type Receipt struct {
	OrderID int64  `json:"order_id"`
	Email   string `json:"email"`
	Body    string `json:"body"`
}

// ReceiptNotifier delivers receipts out of band. Publishing happens strictly
// after commit and failures are logged, never surfaced to the customer.
type ReceiptNotifier interface {
	PublishReceipt(receipt Receipt) error
}

// PlaceOrderRequest is the customer checkout payload.
type PlaceOrderRequest struct {
	Cart          []CartLine `json:"cart" binding:"required,min=1"`
	EmployeeID    int64      `json:"employee_id"`
	PaymentMethod string     `json:"payment_method"`
	Email         string     `json:"email"`
	UseLoyalty    bool       `json:"use_loyalty"`
	WantsReceipt  bool       `json:"wants_receipt"`
}

// PlaceOrderResult reports the committed order and its pricing breakdown.
type PlaceOrderResult struct {
	OrderID       int64   `json:"order_id"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	LoyaltyPoints *int    `json:"loyalty_points,omitempty"`
}

var validPaymentMethods = map[string]bool{"CASH": true, "CARD": true, "MOBILE": true}

// OrderService owns order placement, the kitchen pipeline and the cashier
// order operations. Services control transaction boundaries; repositories
// receive the executor.
type OrderService struct {
	db             *sql.DB
	orderRepo      repositories.OrderRepository
	menuRepo       repositories.MenuRepository
	ingredientRepo repositories.IngredientRepository
	userRepo       repositories.UserRepository
	movementRepo   repositories.MovementRepository
	composer       *Composer
	pricing        *PricingEngine
	notifier       ReceiptNotifier
	redeemCost     int
}

// NewOrderService creates a new instance of OrderService. notifier may be nil
// when receipt delivery is disabled.
func NewOrderService(
	db *sql.DB,
	orderRepo repositories.OrderRepository,
	menuRepo repositories.MenuRepository,
	ingredientRepo repositories.IngredientRepository,
	userRepo repositories.UserRepository,
	movementRepo repositories.MovementRepository,
	composer *Composer,
	pricing *PricingEngine,
	notifier ReceiptNotifier,
	pricingCfg config.PricingConfig,
) *OrderService {
	return &OrderService{
		db:             db,
		orderRepo:      orderRepo,
		menuRepo:       menuRepo,
		ingredientRepo: ingredientRepo,
		userRepo:       userRepo,
		movementRepo:   movementRepo,
		composer:       composer,
		pricing:        pricing,
		notifier:       notifier,
		redeemCost:     pricingCfg.LoyaltyRedeemCost,
	}
}

// PlaceOrder runs the whole customer checkout in one transaction: pricing
// against a catalog snapshot, the order header, one drinks_orders row per
// drink unit, the consumed ingredient rows, stock decrements, ledger rows and
// the loyalty balance update. Any unresolved menu or ingredient reference
// rolls the entire placement back.
func (s *OrderService) PlaceOrder(req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Cart) == 0 {
		return nil, fmt.Errorf("%w: cart must not be empty", repositories.ErrValidation)
	}
	method := strings.ToUpper(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		method = "CARD"
	}
	if !validPaymentMethods[method] {
		return nil, fmt.Errorf("%w: invalid payment method %q", repositories.ErrValidation, req.PaymentMethod)
	}

	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	drinks, err := s.composer.ComposeAll(req.Cart, catalog)
	if err != nil {
		return nil, err
	}
	if err := validateReferences(req.Cart, drinks, catalog); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", repositories.ErrDatabaseError, err)
	}
	defer tx.Rollback()

	// The loyalty account joins the transaction: a rolled-back placement
	// must not leave a freshly created user row behind.
	var user *models.User
	points := 0
	if req.Email != "" {
		user, err = s.userRepo.UpsertUserByEmail(tx, req.Email)
		if err != nil {
			return nil, err
		}
		points, err = s.userRepo.GetLoyaltyPointsForUpdate(tx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	quote := s.pricing.PriceCartWithLoyalty(req.Cart, catalog, points, req.UseLoyalty && user != nil)

	order := &models.Order{
		Cost:          quote.Total.InexactFloat64(),
		EmployeeID:    req.EmployeeID,
		PaymentMethod: method,
	}
	if user != nil {
		order.UserID = &user.ID
	}
	orderID, err := s.orderRepo.CreateOrder(tx, order)
	if err != nil {
		return nil, err
	}

	for i, line := range req.Cart {
		drink := drinks[i]
		for unit := 0; unit < line.Quantity; unit++ {
			if err := s.persistDrinkUnit(tx, orderID, req.EmployeeID, drink); err != nil {
				return nil, err
			}
		}
	}

	var newPoints *int
	if user != nil {
		balance := points
		if quote.Discount.IsPositive() {
			balance -= s.redeemCost
		}
		balance += int(quote.Subtotal.Floor().IntPart())
		if err := s.userRepo.UpdateLoyaltyPoints(tx, user.ID, balance); err != nil {
			return nil, err
		}
		newPoints = &balance
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit order: %v", repositories.ErrDatabaseError, err)
	}

	if req.WantsReceipt && req.Email != "" && s.notifier != nil {
		receipt := Receipt{
			OrderID: orderID,
			Email:   req.Email,
			Body:    BuildReceiptBody(orderID, req.Cart, catalog, s.pricing, quote),
		}
		if err := s.notifier.PublishReceipt(receipt); err != nil {
			log.Error().Err(err).Int64("order_id", orderID).Msg("Failed to publish receipt notification")
		}
	}

	return &PlaceOrderResult{
		OrderID:       orderID,
		Subtotal:      quote.Subtotal.InexactFloat64(),
		Discount:      quote.Discount.InexactFloat64(),
		Tax:           quote.Tax.InexactFloat64(),
		Total:         quote.Total.InexactFloat64(),
		LoyaltyPoints: newPoints,
	}, nil
}

// persistDrinkUnit writes one physical drink: its drinks_orders row, the
// consumed ingredient rows with stock decrements, the base menu stock
// decrement and one ledger row per mutation.
func (s *OrderService) persistDrinkUnit(tx repositories.SQLExecutor, orderID, employeeID int64, drink ComposedDrink) error {
	drinkID, err := s.orderRepo.CreateDrinkOrder(tx, drink.MenuID, orderID)
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("order #%d", orderID)
	for _, ingredientID := range drink.Discrete {
		if err := s.consumeIngredient(tx, drinkID, ingredientID, 1, employeeID, reason); err != nil {
			return err
		}
	}
	for _, scalar := range drink.Scalar {
		if err := s.consumeIngredient(tx, drinkID, scalar.IngredientID, scalar.Servings, employeeID, reason); err != nil {
			return err
		}
	}

	if err := s.menuRepo.DecrementMenuStock(tx, drink.MenuID, 1); err != nil {
		return err
	}
	menuID := drink.MenuID
	_, err = s.movementRepo.CreateMovement(tx, &models.InventoryMovement{
		MenuID:          &menuID,
		EmployeeID:      &employeeID,
		MovementType:    models.MovementTypeSale,
		QuantityChanged: -1,
		Reason:          &reason,
	})
	return err
}

func (s *OrderService) consumeIngredient(tx repositories.SQLExecutor, drinkID, ingredientID int64, servings int, employeeID int64, reason string) error {
	if _, err := s.orderRepo.CreateDrinkIngredient(tx, drinkID, ingredientID, servings); err != nil {
		return err
	}
	if err := s.ingredientRepo.DecrementIngredientStock(tx, ingredientID, servings); err != nil {
		return err
	}
	ingID := ingredientID
	_, err := s.movementRepo.CreateMovement(tx, &models.InventoryMovement{
		IngredientID:    &ingID,
		EmployeeID:      &employeeID,
		MovementType:    models.MovementTypeSale,
		QuantityChanged: -servings,
		Reason:          &reason,
	})
	return err
}

// loadCatalog snapshots the menu and ingredient tables for one request.
func (s *OrderService) loadCatalog() (*Catalog, error) {
	menu, err := s.menuRepo.GetMenuItems()
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredientRepo.GetIngredients()
	if err != nil {
		return nil, err
	}
	return NewCatalog(menu, ingredients), nil
}

// validateReferences rejects a cart whose base drinks or composed ingredients
// are absent from the catalog snapshot, before any row is written.
func validateReferences(cart []CartLine, drinks []ComposedDrink, catalog *Catalog) error {
	for _, line := range cart {
		if _, ok := catalog.MenuItem(line.MenuID); !ok {
			return fmt.Errorf("%w: menu item %d", repositories.ErrNotFound, line.MenuID)
		}
	}
	for _, drink := range drinks {
		for _, id := range drink.Discrete {
			if _, ok := catalog.IngredientByID(id); !ok {
				return fmt.Errorf("%w: ingredient %d", repositories.ErrNotFound, id)
			}
		}
		for _, scalar := range drink.Scalar {
			if _, ok := catalog.IngredientByID(scalar.IngredientID); !ok {
				return fmt.Errorf("%w: ingredient %d", repositories.ErrNotFound, scalar.IngredientID)
			}
		}
	}
	return nil
}

// CreateCashierOrder inserts a pre-priced order header from the cashier
// terminal. Pricing happened client side on this path; the customer flow is
// the canonical server-priced one.
func (s *OrderService) CreateCashierOrder(cost float64, employeeID int64, paymentMethod string) (int64, error) {
	method := strings.ToUpper(strings.TrimSpace(paymentMethod))
	if method == "" {
		method = "CARD"
	}
	if !validPaymentMethods[method] {
		return 0, fmt.Errorf("%w: invalid payment method %q", repositories.ErrValidation, paymentMethod)
	}
	order := &models.Order{Cost: cost, EmployeeID: employeeID, PaymentMethod: method}
	return s.orderRepo.CreateOrder(s.db, order)
}

// AddDrinkToOrder links one drink to an existing order and decrements the
// menu stock, committing the link, the decrement and the ledger row together.
func (s *OrderService) AddDrinkToOrder(menuID, orderID int64) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %v", repositories.ErrDatabaseError, err)
	}
	defer tx.Rollback()

	order, err := s.orderRepo.GetOrderByID(tx, orderID)
	if err != nil {
		return 0, err
	}
	drinkID, err := s.orderRepo.CreateDrinkOrder(tx, menuID, orderID)
	if err != nil {
		return 0, err
	}
	if err := s.menuRepo.DecrementMenuStock(tx, menuID, 1); err != nil {
		return 0, err
	}
	mID := menuID
	reason := fmt.Sprintf("order #%d", orderID)
	_, err = s.movementRepo.CreateMovement(tx, &models.InventoryMovement{
		MenuID:          &mID,
		EmployeeID:      &order.EmployeeID,
		MovementType:    models.MovementTypeSale,
		QuantityChanged: -1,
		Reason:          &reason,
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: failed to commit drink link: %v", repositories.ErrDatabaseError, err)
	}
	return drinkID, nil
}

// AddIngredientToDrink records one consumed customization on a drink and
// decrements the ingredient stock, committing both with the ledger row.
func (s *OrderService) AddIngredientToDrink(drinkID, ingredientID int64, servings int) (int64, error) {
	if servings < 1 {
		return 0, fmt.Errorf("%w: servings must be positive", repositories.ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %v", repositories.ErrDatabaseError, err)
	}
	defer tx.Rollback()

	id, err := s.orderRepo.CreateDrinkIngredient(tx, drinkID, ingredientID, servings)
	if err != nil {
		return 0, err
	}
	if err := s.ingredientRepo.DecrementIngredientStock(tx, ingredientID, servings); err != nil {
		return 0, err
	}
	ingID := ingredientID
	reason := fmt.Sprintf("drink #%d", drinkID)
	_, err = s.movementRepo.CreateMovement(tx, &models.InventoryMovement{
		IngredientID:    &ingID,
		MovementType:    models.MovementTypeSale,
		QuantityChanged: -servings,
		Reason:          &reason,
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: failed to commit ingredient consumption: %v", repositories.ErrDatabaseError, err)
	}
	return id, nil
}

// GetOrderWithDrinks returns one order with its drinks and their consumed
// ingredients materialized, as shown on the kitchen display.
func (s *OrderService) GetOrderWithDrinks(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(s.db, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.orderRepo.GetDrinksForOrder(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// GetKitchenOrders lists orders for the kitchen display, each with nested
// drinks and consumed ingredients.
func (s *OrderService) GetKitchenOrders(filters models.OrderFilters) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := s.orderRepo.GetDrinksForOrder(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// SetOrderStatus writes an explicit status. The target must be a recognized
// pipeline state, but any recognized state is accepted.
func (s *OrderService) SetOrderStatus(orderID int64, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: invalid order status %q", repositories.ErrValidation, status)
	}
	return s.orderRepo.UpdateOrderStatus(s.db, orderID, status)
}

// AdvanceOrder moves an order one step along the pipeline and returns the
// resulting status. Advancing a completed order is a no-op.
func (s *OrderService) AdvanceOrder(orderID int64) (models.OrderStatus, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("%w: failed to begin transaction: %v", repositories.ErrDatabaseError, err)
	}
	defer tx.Rollback()

	order, err := s.orderRepo.GetOrderByID(tx, orderID)
	if err != nil {
		return "", err
	}
	next := AdvanceStatus(order.OrderStatus)
	if next != order.OrderStatus {
		if err := s.orderRepo.UpdateOrderStatus(tx, orderID, next); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: failed to commit status advance: %v", repositories.ErrDatabaseError, err)
	}
	return next, nil
}
