package services

import (
	"database/sql"
	"fmt"

	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

// MenuService exposes the catalog read paths and the manager CRUD for menu
// items and ingredients.
type MenuService struct {
	db             *sql.DB
	menuRepo       repositories.MenuRepository
	ingredientRepo repositories.IngredientRepository
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(db *sql.DB, menuRepo repositories.MenuRepository, ingredientRepo repositories.IngredientRepository) *MenuService {
	return &MenuService{db: db, menuRepo: menuRepo, ingredientRepo: ingredientRepo}
}

func (s *MenuService) GetCategories() ([]models.Category, error) {
	return s.menuRepo.GetCategories()
}

func (s *MenuService) GetMenuItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetMenuItems()
}

func (s *MenuService) GetMenuByCategory(categoryID int64) ([]models.MenuItem, error) {
	return s.menuRepo.GetMenuByCategory(categoryID)
}

func (s *MenuService) GetMenuItem(id int64) (*models.MenuItem, error) {
	return s.menuRepo.GetMenuItemByID(s.db, id)
}

func (s *MenuService) CreateMenuItem(item *models.MenuItem) (int64, error) {
	if item.Name == "" {
		return 0, fmt.Errorf("%w: menu item name is required", repositories.ErrValidation)
	}
	if item.Cost < 0 {
		return 0, fmt.Errorf("%w: menu item cost must not be negative", repositories.ErrValidation)
	}
	return s.menuRepo.CreateMenuItem(s.db, item)
}

func (s *MenuService) UpdateMenuItem(item *models.MenuItem) error {
	if item.ID <= 0 {
		return fmt.Errorf("%w: menu item id is required", repositories.ErrValidation)
	}
	if item.Cost < 0 {
		return fmt.Errorf("%w: menu item cost must not be negative", repositories.ErrValidation)
	}
	return s.menuRepo.UpdateMenuItem(s.db, item)
}

func (s *MenuService) DeleteMenuItem(id int64) error {
	return s.menuRepo.DeleteMenuItem(s.db, id)
}

func (s *MenuService) GetIngredients() ([]models.Ingredient, error) {
	return s.ingredientRepo.GetIngredients()
}

func (s *MenuService) GetIngredient(id int64) (*models.Ingredient, error) {
	return s.ingredientRepo.GetIngredientByID(s.db, id)
}

func (s *MenuService) CreateIngredient(ing *models.Ingredient) (int64, error) {
	if ing.Name == "" {
		return 0, fmt.Errorf("%w: ingredient name is required", repositories.ErrValidation)
	}
	if ing.Cost < 0 {
		return 0, fmt.Errorf("%w: ingredient cost must not be negative", repositories.ErrValidation)
	}
	return s.ingredientRepo.CreateIngredient(s.db, ing)
}

func (s *MenuService) UpdateIngredient(ing *models.Ingredient) error {
	if ing.ID <= 0 {
		return fmt.Errorf("%w: ingredient id is required", repositories.ErrValidation)
	}
	if ing.Cost < 0 {
		return fmt.Errorf("%w: ingredient cost must not be negative", repositories.ErrValidation)
	}
	return s.ingredientRepo.UpdateIngredient(s.db, ing)
}

func (s *MenuService) DeleteIngredient(id int64) error {
	return s.ingredientRepo.DeleteIngredient(s.db, id)
}
