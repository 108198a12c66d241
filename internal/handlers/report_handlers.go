package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teahouse_backend/internal/models"
	"teahouse_backend/internal/services"
	"teahouse_backend/pkg/utils"
)

// ReportHandler holds the report and inventory services.
type ReportHandler struct {
	reportService    *services.ReportService
	inventoryService *services.InventoryService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs *services.ReportService, is *services.InventoryService) *ReportHandler {
	return &ReportHandler{reportService: rs, inventoryService: is}
}

// Restock lists ingredients at or below the low-stock threshold.
func (h *ReportHandler) Restock(c *gin.Context) {
	rows, err := h.reportService.Restock()
	if err != nil {
		utils.LogError(err, "Restock: Error from reportService.Restock")
		utils.RespondWithServiceError(c, err)
		return
	}
	if rows == nil {
		rows = []models.RestockRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// Sales aggregates revenue per menu item over a date range.
func (h *ReportHandler) Sales(c *gin.Context) {
	var r models.ReportRange
	if err := c.ShouldBindQuery(&r); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "startDate and endDate are required", err.Error()))
		return
	}

	rows, err := h.reportService.Sales(r)
	if err != nil {
		utils.LogError(err, "Sales: Error from reportService.Sales")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid date range", err.Error()))
		return
	}
	if rows == nil {
		rows = []models.SalesRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// Usage aggregates ingredient consumption over a date range.
func (h *ReportHandler) Usage(c *gin.Context) {
	var r models.ReportRange
	if err := c.ShouldBindQuery(&r); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "startDate and endDate are required", err.Error()))
		return
	}

	rows, err := h.reportService.Usage(r)
	if err != nil {
		utils.LogError(err, "Usage: Error from reportService.Usage")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid date range", err.Error()))
		return
	}
	if rows == nil {
		rows = []models.UsageRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// XReport returns today's hourly sales so far.
func (h *ReportHandler) XReport(c *gin.Context) {
	rows, err := h.reportService.XReport(time.Now())
	if err != nil {
		utils.LogError(err, "XReport: Error from reportService.XReport")
		utils.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ZReport returns the prior day's close-out metrics.
func (h *ReportHandler) ZReport(c *gin.Context) {
	rows, err := h.reportService.ZReport(time.Now())
	if err != nil {
		utils.LogError(err, "ZReport: Error from reportService.ZReport")
		utils.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetMovements lists inventory ledger rows with pagination.
func (h *ReportHandler) GetMovements(c *gin.Context) {
	var filters models.MovementFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid query parameters", err.Error()))
		return
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}

	movements, total, err := h.inventoryService.GetMovements(filters)
	if err != nil {
		utils.LogError(err, "GetMovements: Error from inventoryService.GetMovements")
		utils.RespondWithServiceError(c, err)
		return
	}
	if movements == nil {
		movements = []models.InventoryMovement{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  movements,
		"total": total,
		"page":  filters.Page,
	})
}
