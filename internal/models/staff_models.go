package models

// Employee identifies a staff member for login and order attribution.
// The PIN is stored as a bcrypt hash and never serialized.
type Employee struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	HoursWorked float64 `json:"hours_worked"`
	IsManager   bool    `json:"is_manager"`
	PinHash     string  `json:"-"`
}

// User is a loyalty account, created or looked up by email on first
// sign-in and mutated only by the order placement loyalty rule.
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	LoyaltyPoints int    `json:"loyalty_points"`
}
