package services

import (
	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

// InventoryService reads the stock mutation ledger for the back office.
type InventoryService struct {
	repo repositories.MovementRepository
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(repo repositories.MovementRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// GetMovements lists ledger rows matching the filters with the total count
// for pagination.
func (s *InventoryService) GetMovements(filters models.MovementFilters) ([]models.InventoryMovement, int, error) {
	return s.repo.GetMovements(filters)
}
