package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"teahouse_backend/internal/models"

	"github.com/lib/pq"
)

// IngredientRepository defines ingredient database operations.
type IngredientRepository interface {
	GetIngredients() ([]models.Ingredient, error)
	GetIngredientByID(executor SQLExecutor, id int64) (*models.Ingredient, error)
	CreateIngredient(executor SQLExecutor, ing *models.Ingredient) (int64, error)
	UpdateIngredient(executor SQLExecutor, ing *models.Ingredient) error
	DeleteIngredient(executor SQLExecutor, id int64) error
	DecrementIngredientStock(executor SQLExecutor, ingredientID int64, servings int) error
}

type ingredientRepository struct {
	db *sql.DB
}

// NewIngredientRepository creates a new instance of IngredientRepository.
func NewIngredientRepository(db *sql.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetIngredients() ([]models.Ingredient, error) {
	query := `SELECT id, name, stock, cost::float8, ingredient_type, ingredient_group
	          FROM ingredients
	          ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying ingredients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	return collectIngredients(rows)
}

func collectIngredients(rows *sql.Rows) ([]models.Ingredient, error) {
	ingredients := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Stock, &ing.Cost, &ing.IngredientType, &ing.IngredientGroup); err != nil {
			return nil, fmt.Errorf("%w: scanning ingredient: %v", ErrDatabaseError, err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating ingredients: %v", ErrDatabaseError, err)
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetIngredientByID(executor SQLExecutor, id int64) (*models.Ingredient, error) {
	var ing models.Ingredient
	query := `SELECT id, name, stock, cost::float8, ingredient_type, ingredient_group
	          FROM ingredients
	          WHERE id = $1`
	err := executor.QueryRow(query, id).Scan(&ing.ID, &ing.Name, &ing.Stock, &ing.Cost, &ing.IngredientType, &ing.IngredientGroup)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting ingredient by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &ing, nil
}

func (r *ingredientRepository) CreateIngredient(executor SQLExecutor, ing *models.Ingredient) (int64, error) {
	query := `INSERT INTO ingredients (name, stock, cost, ingredient_type, ingredient_group)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	group := ing.IngredientGroup
	if group == "" {
		group = "Default"
	}
	err := executor.QueryRow(query, ing.Name, ing.Stock, ing.Cost, ing.IngredientType, group).Scan(&ing.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: ingredient %q already exists (constraint: %s)", ErrDuplicateKey, ing.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating ingredient: %v", ErrDatabaseError, err)
	}
	return ing.ID, nil
}

func (r *ingredientRepository) UpdateIngredient(executor SQLExecutor, ing *models.Ingredient) error {
	query := `UPDATE ingredients
	          SET name = $2, stock = $3, cost = $4
	          WHERE id = $1`
	result, err := executor.Exec(query, ing.ID, ing.Name, ing.Stock, ing.Cost)
	if err != nil {
		return fmt.Errorf("%w: updating ingredient ID %d: %v", ErrDatabaseError, ing.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ingredientRepository) DeleteIngredient(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: ingredient ID %d is referenced by existing orders (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting ingredient ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementIngredientStock lowers stock unconditionally, matching the
// placement policy: stock never gates an order.
func (r *ingredientRepository) DecrementIngredientStock(executor SQLExecutor, ingredientID int64, servings int) error {
	result, err := executor.Exec(`UPDATE ingredients SET stock = stock - $1 WHERE id = $2`, servings, ingredientID)
	if err != nil {
		return fmt.Errorf("%w: decrementing stock for ingredient %d: %v", ErrDatabaseError, ingredientID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
