package services

import (
	"database/sql"
	"fmt"
	"strings"

	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

// UserService manages loyalty customers. Identity arrives as an email from
// the caller's session provider; accounts are created on first sight.
type UserService struct {
	db   *sql.DB
	repo repositories.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(db *sql.DB, repo repositories.UserRepository) *UserService {
	return &UserService{db: db, repo: repo}
}

// UpsertByEmail finds or creates the loyalty account for an email and returns
// it with the current point balance.
func (s *UserService) UpsertByEmail(email string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email %q", repositories.ErrValidation, email)
	}
	return s.repo.UpsertUserByEmail(s.db, email)
}
