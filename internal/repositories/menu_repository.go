package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"teahouse_backend/internal/models"

	"github.com/lib/pq"
)

// MenuRepository defines category and menu item database operations.
type MenuRepository interface {
	GetCategories() ([]models.Category, error)

	GetMenuItems() ([]models.MenuItem, error)
	GetMenuByCategory(categoryID int64) ([]models.MenuItem, error)
	GetMenuItemByID(executor SQLExecutor, id int64) (*models.MenuItem, error)
	CreateMenuItem(executor SQLExecutor, item *models.MenuItem) (int64, error)
	UpdateMenuItem(executor SQLExecutor, item *models.MenuItem) error
	DeleteMenuItem(executor SQLExecutor, id int64) error
	DecrementMenuStock(executor SQLExecutor, menuID int64, amount int) error
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) GetCategories() ([]models.Category, error) {
	categories := []models.Category{}
	rows, err := r.db.Query(`SELECT id, name, stock FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Stock); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating categories: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *menuRepository) GetMenuItems() ([]models.MenuItem, error) {
	query := `SELECT id, name, category_id, stock, cost::float8, image_url
	          FROM menu
	          ORDER BY id`
	return r.queryMenuItems(query)
}

func (r *menuRepository) GetMenuByCategory(categoryID int64) ([]models.MenuItem, error) {
	query := `SELECT id, name, category_id, stock, cost::float8, image_url
	          FROM menu
	          WHERE category_id = $1
	          ORDER BY id`
	return r.queryMenuItems(query, categoryID)
}

func (r *menuRepository) queryMenuItems(query string, args ...interface{}) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(s rowScanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var categoryID sql.NullInt64
	var imageURL sql.NullString
	if err := s.Scan(&item.ID, &item.Name, &categoryID, &item.Stock, &item.Cost, &imageURL); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		item.CategoryID = &categoryID.Int64
	}
	if imageURL.Valid {
		url := imageURL.String
		item.ImageURL = &url
	}
	return &item, nil
}

func (r *menuRepository) GetMenuItemByID(executor SQLExecutor, id int64) (*models.MenuItem, error) {
	query := `SELECT id, name, category_id, stock, cost::float8, image_url
	          FROM menu
	          WHERE id = $1`
	item, err := scanMenuItem(executor.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *menuRepository) CreateMenuItem(executor SQLExecutor, item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu (name, category_id, stock, cost, image_url)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := executor.QueryRow(query, item.Name, item.CategoryID, item.Stock, item.Cost, item.ImageURL).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: invalid category for menu item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *menuRepository) UpdateMenuItem(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu
	          SET name = $2, category_id = $3, stock = $4, cost = $5
	          WHERE id = $1`
	result, err := executor.Exec(query, item.ID, item.Name, item.CategoryID, item.Stock, item.Cost)
	if err != nil {
		return fmt.Errorf("%w: updating menu item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) DeleteMenuItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM menu WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: menu item ID %d is referenced by existing orders (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting menu item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementMenuStock lowers stock unconditionally. Stock is a display and
// reporting signal, not an allocation gate, so it may go negative.
func (r *menuRepository) DecrementMenuStock(executor SQLExecutor, menuID int64, amount int) error {
	result, err := executor.Exec(`UPDATE menu SET stock = stock - $1 WHERE id = $2`, amount, menuID)
	if err != nil {
		return fmt.Errorf("%w: decrementing stock for menu item %d: %v", ErrDatabaseError, menuID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
