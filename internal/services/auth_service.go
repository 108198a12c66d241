package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
	"teahouse_backend/pkg/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginResult is the authenticated session handed back after a PIN login.
type LoginResult struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsManager bool   `json:"is_manager"`
	Token     string `json:"token"`
}

// AuthService authenticates employees by PIN and issues session tokens.
type AuthService struct {
	repo   repositories.EmployeeRepository
	issuer *utils.TokenIssuer
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(repo repositories.EmployeeRepository, issuer *utils.TokenIssuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// Login finds the employee whose stored hash matches the PIN. The roster is
// small, so comparing against each hash is acceptable; PINs are not unique
// keys and are never stored in clear.
func (s *AuthService) Login(pin string) (*LoginResult, error) {
	if pin == "" {
		return nil, ErrInvalidCredentials
	}

	employees, err := s.repo.GetEmployeesForAuth()
	if err != nil {
		return nil, err
	}

	var match *models.Employee
	for i := range employees {
		if bcrypt.CompareHashAndPassword([]byte(employees[i].PinHash), []byte(pin)) == nil {
			match = &employees[i]
			break
		}
	}
	if match == nil {
		return nil, ErrInvalidCredentials
	}

	role := "cashier"
	if match.IsManager {
		role = "manager"
	}
	token, err := s.issuer.GenerateToken(match.ID, match.Name, role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		ID:        match.ID,
		Name:      match.Name,
		IsManager: match.IsManager,
		Token:     token,
	}, nil
}
