package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"teahouse_backend/internal/models"
)

// MovementRepository defines the inventory ledger database operations.
type MovementRepository interface {
	CreateMovement(executor SQLExecutor, movement *models.InventoryMovement) (int64, error)
	GetMovements(filters models.MovementFilters) ([]models.InventoryMovement, int, error)
}

type movementRepository struct {
	db *sql.DB
}

// NewMovementRepository creates a new instance of MovementRepository.
func NewMovementRepository(db *sql.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) CreateMovement(executor SQLExecutor, movement *models.InventoryMovement) (int64, error) {
	if movement.MovementDate.IsZero() {
		movement.MovementDate = time.Now()
	}
	query := `INSERT INTO inventory_movements
	          (ingredient_id, menu_id, employee_id, movement_type, quantity_changed, reason, movement_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	err := executor.QueryRow(query,
		movement.IngredientID, movement.MenuID, movement.EmployeeID,
		movement.MovementType, movement.QuantityChanged, movement.Reason, movement.MovementDate,
	).Scan(&movement.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating inventory movement: %v", ErrDatabaseError, err)
	}
	return movement.ID, nil
}

func (r *movementRepository) GetMovements(filters models.MovementFilters) ([]models.InventoryMovement, int, error) {
	movements := []models.InventoryMovement{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    im.id, im.ingredient_id, im.menu_id, im.employee_id, im.movement_type,
	    im.quantity_changed, im.reason, im.movement_date,
	    i.name AS ingredient_name, m.name AS menu_item_name,
	    COUNT(*) OVER() AS total_count
	  FROM inventory_movements im
	  LEFT JOIN ingredients i ON im.ingredient_id = i.id
	  LEFT JOIN menu m ON im.menu_id = m.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.IngredientID != nil {
		conditions = append(conditions, fmt.Sprintf("im.ingredient_id = $%d", argCount))
		args = append(args, *filters.IngredientID)
		argCount++
	}
	if filters.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("im.employee_id = $%d", argCount))
		args = append(args, *filters.EmployeeID)
		argCount++
	}
	if filters.MovementType != nil && *filters.MovementType != "" {
		conditions = append(conditions, fmt.Sprintf("im.movement_type = $%d", argCount))
		args = append(args, *filters.MovementType)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY im.movement_date DESC, im.id DESC")

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting inventory movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var movement models.InventoryMovement
		var ingredientID, menuID, employeeID sql.NullInt64
		var reason, ingredientName, menuItemName sql.NullString

		if err := rows.Scan(
			&movement.ID, &ingredientID, &menuID, &employeeID, &movement.MovementType,
			&movement.QuantityChanged, &reason, &movement.MovementDate,
			&ingredientName, &menuItemName,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning inventory movement: %v", ErrDatabaseError, err)
		}

		if ingredientID.Valid {
			movement.IngredientID = &ingredientID.Int64
		}
		if menuID.Valid {
			movement.MenuID = &menuID.Int64
		}
		if employeeID.Valid {
			movement.EmployeeID = &employeeID.Int64
		}
		if reason.Valid {
			v := reason.String
			movement.Reason = &v
		}
		if ingredientName.Valid {
			v := ingredientName.String
			movement.IngredientName = &v
		}
		if menuItemName.Valid {
			v := menuItemName.String
			movement.MenuItemName = &v
		}
		movements = append(movements, movement)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating inventory movements: %v", ErrDatabaseError, err)
	}
	return movements, totalCount, nil
}
