package services

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

// EmployeeService manages the staff roster. PINs are stored only as bcrypt
// hashes; plain PINs exist in memory during create, update and login.
type EmployeeService struct {
	db   *sql.DB
	repo repositories.EmployeeRepository
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(db *sql.DB, repo repositories.EmployeeRepository) *EmployeeService {
	return &EmployeeService{db: db, repo: repo}
}

func (s *EmployeeService) GetEmployees() ([]models.Employee, error) {
	return s.repo.GetEmployees()
}

func (s *EmployeeService) GetEmployee(id int64) (*models.Employee, error) {
	return s.repo.GetEmployeeByID(id)
}

// CreateEmployee hashes the PIN and inserts the employee.
func (s *EmployeeService) CreateEmployee(emp *models.Employee, pin string) (int64, error) {
	if emp.Name == "" {
		return 0, fmt.Errorf("%w: employee name is required", repositories.ErrValidation)
	}
	hash, err := hashPIN(pin)
	if err != nil {
		return 0, err
	}
	emp.PinHash = hash
	return s.repo.CreateEmployee(s.db, emp)
}

// UpdateEmployee updates the roster entry. An empty pin leaves the stored
// hash untouched.
func (s *EmployeeService) UpdateEmployee(emp *models.Employee, pin string) error {
	if emp.ID <= 0 {
		return fmt.Errorf("%w: employee id is required", repositories.ErrValidation)
	}
	if pin != "" {
		hash, err := hashPIN(pin)
		if err != nil {
			return err
		}
		emp.PinHash = hash
	}
	return s.repo.UpdateEmployee(s.db, emp)
}

func (s *EmployeeService) DeleteEmployee(id int64) error {
	return s.repo.DeleteEmployee(s.db, id)
}

func hashPIN(pin string) (string, error) {
	if len(pin) < 4 {
		return "", fmt.Errorf("%w: pin must be at least 4 digits", repositories.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %v", err)
	}
	return string(hash), nil
}
