package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teahouse_backend/internal/models"
	"teahouse_backend/internal/services"
	"teahouse_backend/pkg/utils"
)

// StaffHandler holds the employee service.
type StaffHandler struct {
	employeeService *services.EmployeeService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(es *services.EmployeeService) *StaffHandler {
	return &StaffHandler{employeeService: es}
}

type employeeRequest struct {
	Name        string  `json:"name" binding:"required"`
	HoursWorked float64 `json:"hours_worked"`
	IsManager   bool    `json:"is_manager"`
	Pin         string  `json:"pin"`
}

// GetEmployees lists the staff roster.
func (h *StaffHandler) GetEmployees(c *gin.Context) {
	employees, err := h.employeeService.GetEmployees()
	if err != nil {
		utils.LogError(err, "GetEmployees: Error from employeeService.GetEmployees")
		utils.RespondWithServiceError(c, err)
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	c.JSON(http.StatusOK, employees)
}

// GetEmployee returns one roster entry.
func (h *StaffHandler) GetEmployee(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid employee id", err.Error()))
		return
	}

	emp, err := h.employeeService.GetEmployee(id)
	if err != nil {
		utils.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// CreateEmployee adds an employee; the PIN is required and stored hashed.
func (h *StaffHandler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	if req.Pin == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "PIN is required", ""))
		return
	}

	emp := models.Employee{Name: req.Name, HoursWorked: req.HoursWorked, IsManager: req.IsManager}
	id, err := h.employeeService.CreateEmployee(&emp, req.Pin)
	if err != nil {
		utils.LogError(err, "CreateEmployee: Error from employeeService.CreateEmployee")
		utils.RespondWithServiceError(c, err)
		return
	}
	emp.ID = id
	c.JSON(http.StatusCreated, emp)
}

// UpdateEmployee edits a roster entry; an empty PIN keeps the current one.
func (h *StaffHandler) UpdateEmployee(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid employee id", err.Error()))
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	emp := models.Employee{ID: id, Name: req.Name, HoursWorked: req.HoursWorked, IsManager: req.IsManager}
	if err := h.employeeService.UpdateEmployee(&emp, req.Pin); err != nil {
		utils.LogError(err, "UpdateEmployee: Error from employeeService.UpdateEmployee")
		utils.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DeleteEmployee removes a roster entry.
func (h *StaffHandler) DeleteEmployee(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid employee id", err.Error()))
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		utils.LogError(err, "DeleteEmployee: Error from employeeService.DeleteEmployee")
		utils.RespondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
