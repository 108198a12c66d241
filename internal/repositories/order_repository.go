package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"teahouse_backend/internal/models"

	"github.com/lib/pq"
)

// OrderRepository defines order, drink-order and drink-ingredient operations.
type OrderRepository interface {
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	GetOrderByID(executor SQLExecutor, orderID int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, error)
	UpdateOrderStatus(executor SQLExecutor, orderID int64, status models.OrderStatus) error

	CreateDrinkOrder(executor SQLExecutor, menuID, orderID int64) (int64, error)
	CreateDrinkIngredient(executor SQLExecutor, drinkID, ingredientID int64, servings int) (int64, error)
	GetDrinksForOrder(orderID int64) ([]models.MenuItem, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	if order.OrderStatus == "" {
		order.OrderStatus = models.StatusNotWorkingOn
	}
	if order.PlacedAt.IsZero() {
		order.PlacedAt = time.Now()
	}
	query := `INSERT INTO orders (cost, employee_id, payment_method, order_status, user_id, placed_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := executor.QueryRow(query,
		order.Cost, order.EmployeeID, order.PaymentMethod, order.OrderStatus, order.UserID, order.PlacedAt,
	).Scan(&order.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: creating order (constraint: %s): %v", ErrNotFound, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) GetOrderByID(executor SQLExecutor, orderID int64) (*models.Order, error) {
	order := &models.Order{}
	var userID sql.NullInt64
	query := `SELECT id, placed_at, cost::float8, employee_id, payment_method, order_status, user_id
	          FROM orders
	          WHERE id = $1`
	err := executor.QueryRow(query, orderID).Scan(
		&order.ID, &order.PlacedAt, &order.Cost, &order.EmployeeID,
		&order.PaymentMethod, &order.OrderStatus, &userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if userID.Valid {
		order.UserID = &userID.Int64
	}
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, placed_at, cost::float8, employee_id, payment_method, order_status, user_id
	  FROM orders`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("order_status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argCounter))
		args = append(args, *filters.EmployeeID)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1)
			conditions = append(conditions, fmt.Sprintf("placed_at >= $%d AND placed_at < $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY placed_at ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var userID sql.NullInt64
		if err := rows.Scan(&o.ID, &o.PlacedAt, &o.Cost, &o.EmployeeID, &o.PaymentMethod, &o.OrderStatus, &userID); err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		if userID.Valid {
			o.UserID = &userID.Int64
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, orderID int64, status models.OrderStatus) error {
	result, err := executor.Exec(`UPDATE orders SET order_status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order status update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) CreateDrinkOrder(executor SQLExecutor, menuID, orderID int64) (int64, error) {
	var id int64
	query := `INSERT INTO drinks_orders (menu_id, order_id) VALUES ($1, $2) RETURNING id`
	err := executor.QueryRow(query, menuID, orderID).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: linking drink %d to order %d (constraint: %s)", ErrNotFound, menuID, orderID, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating drink order: %v", ErrDatabaseError, err)
	}
	return id, nil
}

func (r *orderRepository) CreateDrinkIngredient(executor SQLExecutor, drinkID, ingredientID int64, servings int) (int64, error) {
	var id int64
	query := `INSERT INTO drinks_ingredients (drink_id, ingredient_id, servings)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := executor.QueryRow(query, drinkID, ingredientID, servings).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: linking ingredient %d to drink %d (constraint: %s)", ErrNotFound, ingredientID, drinkID, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating drink ingredient: %v", ErrDatabaseError, err)
	}
	return id, nil
}

// GetDrinksForOrder materializes the kitchen view of one order: each drink
// instance with the customizations consumed by that instance.
func (r *orderRepository) GetDrinksForOrder(orderID int64) ([]models.MenuItem, error) {
	query := `SELECT dord.id, m.id, m.name, m.category_id, m.stock, m.cost::float8, m.image_url
	          FROM drinks_orders dord
	          JOIN menu m ON m.id = dord.menu_id
	          WHERE dord.order_id = $1
	          ORDER BY dord.id`
	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying drinks for order %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	drinkIDs := []int64{}
	for rows.Next() {
		var drinkID int64
		var item models.MenuItem
		var categoryID sql.NullInt64
		var imageURL sql.NullString
		if err := rows.Scan(&drinkID, &item.ID, &item.Name, &categoryID, &item.Stock, &item.Cost, &imageURL); err != nil {
			return nil, fmt.Errorf("%w: scanning drink for order %d: %v", ErrDatabaseError, orderID, err)
		}
		if categoryID.Valid {
			item.CategoryID = &categoryID.Int64
		}
		if imageURL.Valid {
			url := imageURL.String
			item.ImageURL = &url
		}
		item.Ingredients = []models.DrinkIngredient{}
		items = append(items, item)
		drinkIDs = append(drinkIDs, drinkID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating drinks for order %d: %v", ErrDatabaseError, orderID, err)
	}
	if len(drinkIDs) == 0 {
		return items, nil
	}

	ingQuery := `SELECT di.drink_id, di.id, di.ingredient_id, i.name, di.servings
	             FROM drinks_ingredients di
	             JOIN ingredients i ON i.id = di.ingredient_id
	             WHERE di.drink_id = ANY($1)
	             ORDER BY di.id`
	ingRows, err := r.db.Query(ingQuery, pq.Array(drinkIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: querying drink ingredients for order %d: %v", ErrDatabaseError, orderID, err)
	}
	defer ingRows.Close()

	byDrink := make(map[int64]int, len(drinkIDs))
	for i, id := range drinkIDs {
		byDrink[id] = i
	}
	for ingRows.Next() {
		var drinkID int64
		var di models.DrinkIngredient
		if err := ingRows.Scan(&drinkID, &di.ID, &di.IngredientID, &di.Name, &di.Servings); err != nil {
			return nil, fmt.Errorf("%w: scanning drink ingredient for order %d: %v", ErrDatabaseError, orderID, err)
		}
		if idx, ok := byDrink[drinkID]; ok {
			items[idx].Ingredients = append(items[idx].Ingredients, di)
		}
	}
	if err = ingRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating drink ingredients for order %d: %v", ErrDatabaseError, orderID, err)
	}
	return items, nil
}
