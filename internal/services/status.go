package services

import "teahouse_backend/internal/models"

// AdvanceStatus returns the next state in the kitchen pipeline. The pipeline
// is forward-only and idempotent at the terminal state: advancing a completed
// order yields completed again.
func AdvanceStatus(current models.OrderStatus) models.OrderStatus {
	switch current {
	case models.StatusNotWorkingOn:
		return models.StatusWorking
	case models.StatusWorking:
		return models.StatusCompleted
	case models.StatusCompleted:
		return models.StatusCompleted
	default:
		return models.StatusNotWorkingOn
	}
}
