package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"teahouse_backend/internal/models"
)

// EmployeeRepository defines employee database operations.
type EmployeeRepository interface {
	GetEmployees() ([]models.Employee, error)
	GetEmployeeByID(id int64) (*models.Employee, error)
	GetEmployeesForAuth() ([]models.Employee, error)
	CreateEmployee(executor SQLExecutor, emp *models.Employee) (int64, error)
	UpdateEmployee(executor SQLExecutor, emp *models.Employee) error
	DeleteEmployee(executor SQLExecutor, id int64) error
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetEmployees() ([]models.Employee, error) {
	query := `SELECT id, name, hours_worked, is_manager FROM employees ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.HoursWorked, &e.IsManager); err != nil {
			return nil, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
		}
		employees = append(employees, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employees: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

func (r *employeeRepository) GetEmployeeByID(id int64) (*models.Employee, error) {
	var e models.Employee
	query := `SELECT id, name, hours_worked, is_manager FROM employees WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&e.ID, &e.Name, &e.HoursWorked, &e.IsManager)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &e, nil
}

// GetEmployeesForAuth returns employees with their PIN hashes for login
// comparison. The staff list is small, so the scan-and-compare approach
// keeps hashes out of any indexed/queryable form.
func (r *employeeRepository) GetEmployeesForAuth() ([]models.Employee, error) {
	query := `SELECT id, name, hours_worked, is_manager, pin_hash FROM employees ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employees for auth: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.HoursWorked, &e.IsManager, &e.PinHash); err != nil {
			return nil, fmt.Errorf("%w: scanning employee for auth: %v", ErrDatabaseError, err)
		}
		employees = append(employees, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employees for auth: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

func (r *employeeRepository) CreateEmployee(executor SQLExecutor, emp *models.Employee) (int64, error) {
	query := `INSERT INTO employees (name, hours_worked, pin_hash, is_manager)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := executor.QueryRow(query, emp.Name, emp.HoursWorked, emp.PinHash, emp.IsManager).Scan(&emp.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return emp.ID, nil
}

func (r *employeeRepository) UpdateEmployee(executor SQLExecutor, emp *models.Employee) error {
	var result sql.Result
	var err error
	if emp.PinHash != "" {
		query := `UPDATE employees SET name = $2, hours_worked = $3, pin_hash = $4, is_manager = $5 WHERE id = $1`
		result, err = executor.Exec(query, emp.ID, emp.Name, emp.HoursWorked, emp.PinHash, emp.IsManager)
	} else {
		query := `UPDATE employees SET name = $2, hours_worked = $3, is_manager = $4 WHERE id = $1`
		result, err = executor.Exec(query, emp.ID, emp.Name, emp.HoursWorked, emp.IsManager)
	}
	if err != nil {
		return fmt.Errorf("%w: updating employee ID %d: %v", ErrDatabaseError, emp.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) DeleteEmployee(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting employee ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
