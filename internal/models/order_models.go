package models

import "time"

// OrderStatus is the kitchen pipeline state of an order.
// Transitions are forward-only: not_working_on -> working -> completed.
type OrderStatus string

const (
	StatusNotWorkingOn OrderStatus = "not_working_on"
	StatusWorking      OrderStatus = "working"
	StatusCompleted    OrderStatus = "completed"
)

// Valid reports whether s is a recognized pipeline state.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNotWorkingOn, StatusWorking, StatusCompleted:
		return true
	}
	return false
}

// Order is one checkout. Cost is the final, tax-inclusive,
// discount-applied total for the whole order, not a per-line amount.
type Order struct {
	ID            int64       `json:"id"`
	PlacedAt      time.Time   `json:"placed_at"`
	Cost          float64     `json:"cost"`
	EmployeeID    int64       `json:"employee_id"`
	PaymentMethod string      `json:"payment_method"`
	OrderStatus   OrderStatus `json:"order_status"`
	UserID        *int64      `json:"user_id,omitempty"`
	Items         []MenuItem  `json:"items"`
}

// DrinkOrder links one physical drink instance to its order; a cart line
// with quantity N produces N rows.
type DrinkOrder struct {
	ID      int64 `json:"id"`
	MenuID  int64 `json:"menu_id"`
	OrderID int64 `json:"order_id"`
}

// OrderFilters narrows order list queries.
type OrderFilters struct {
	Status     *OrderStatus `form:"order_status"`
	EmployeeID *int64       `form:"employee_id"`
	Date       *string      `form:"date"` // YYYY-MM-DD
}
