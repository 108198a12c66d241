package models

import "time"

// Movement types recorded in the inventory ledger.
const (
	MovementTypeSale       = "sale"
	MovementTypeRestock    = "restock"
	MovementTypeAdjustment = "adjustment"
)

// InventoryMovement is one audit row per stock mutation. Exactly one of
// IngredientID or MenuID is set depending on what was decremented.
type InventoryMovement struct {
	ID              int64     `json:"id"`
	IngredientID    *int64    `json:"ingredient_id,omitempty"`
	MenuID          *int64    `json:"menu_id,omitempty"`
	EmployeeID      *int64    `json:"employee_id,omitempty"`
	MovementType    string    `json:"movement_type"`
	QuantityChanged int       `json:"quantity_changed"`
	Reason          *string   `json:"reason,omitempty"`
	MovementDate    time.Time `json:"movement_date"`

	IngredientName *string `json:"ingredient_name,omitempty"`
	MenuItemName   *string `json:"menu_item_name,omitempty"`
}

// MovementFilters narrows ledger list queries.
type MovementFilters struct {
	IngredientID *int64  `form:"ingredient_id"`
	EmployeeID   *int64  `form:"employee_id"`
	MovementType *string `form:"movement_type"`
	Page         int     `form:"page"`
	PageSize     int     `form:"page_size"`
}
