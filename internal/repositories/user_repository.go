package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"teahouse_backend/internal/models"
)

// UserRepository defines loyalty account database operations.
type UserRepository interface {
	UpsertUserByEmail(executor SQLExecutor, email string) (*models.User, error)

	// GetLoyaltyPointsForUpdate reads the balance under a row lock so that
	// concurrent redemptions by the same user serialize on the storage engine.
	GetLoyaltyPointsForUpdate(executor SQLExecutor, userID int64) (int, error)
	UpdateLoyaltyPoints(executor SQLExecutor, userID int64, points int) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) UpsertUserByEmail(executor SQLExecutor, email string) (*models.User, error) {
	user := &models.User{}
	query := `INSERT INTO users (email)
	          VALUES ($1)
	          ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
	          RETURNING id, email, loyalty_points`
	err := executor.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.LoyaltyPoints)
	if err != nil {
		return nil, fmt.Errorf("%w: upserting user by email: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *userRepository) GetLoyaltyPointsForUpdate(executor SQLExecutor, userID int64) (int, error) {
	var points int
	query := `SELECT loyalty_points FROM users WHERE id = $1 FOR UPDATE`
	err := executor.QueryRow(query, userID).Scan(&points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: locking loyalty points for user %d: %v", ErrDatabaseError, userID, err)
	}
	return points, nil
}

func (r *userRepository) UpdateLoyaltyPoints(executor SQLExecutor, userID int64, points int) error {
	result, err := executor.Exec(`UPDATE users SET loyalty_points = $1 WHERE id = $2`, points, userID)
	if err != nil {
		return fmt.Errorf("%w: updating loyalty points for user %d: %v", ErrDatabaseError, userID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
