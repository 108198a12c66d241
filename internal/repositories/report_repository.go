package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"teahouse_backend/internal/models"
)

// ReportRepository defines read-side aggregation queries over persisted
// orders. Read-committed isolation is sufficient here; a slightly stale or
// in-flight order is tolerated.
type ReportRepository interface {
	GetLowStockIngredients(threshold int) ([]models.RestockRow, error)
	GetSalesBetween(start, end time.Time) ([]models.SalesRow, error)
	GetUsageBetween(start, end time.Time) ([]models.UsageRow, error)

	// GetHourlySales buckets orders of [dayStart, cutoff) by hour of day.
	GetHourlySales(dayStart, cutoff time.Time) ([]HourBucket, error)
	GetDayTotals(dayStart, dayEnd time.Time) (*models.ZReportTotals, error)
}

type HourBucket struct {
	Hour          int
	NumberOfSales int
	TotalSales    float64
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetLowStockIngredients(threshold int) ([]models.RestockRow, error) {
	query := `SELECT name, stock
	          FROM ingredients
	          WHERE stock <= $1
	          ORDER BY stock ASC`
	rows, err := r.db.Query(query, threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: querying low stock ingredients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	result := []models.RestockRow{}
	for rows.Next() {
		var row models.RestockRow
		if err := rows.Scan(&row.IngredientName, &row.Stock); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock row: %v", ErrDatabaseError, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}

func (r *reportRepository) GetSalesBetween(start, end time.Time) ([]models.SalesRow, error) {
	query := `SELECT m.name, SUM(m.cost)::float8
	          FROM drinks_orders dord
	          JOIN orders o ON o.id = dord.order_id
	          JOIN menu m ON m.id = dord.menu_id
	          WHERE o.placed_at >= $1 AND o.placed_at < $2
	          GROUP BY m.name
	          ORDER BY m.name`
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales between dates: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	result := []models.SalesRow{}
	for rows.Next() {
		var row models.SalesRow
		if err := rows.Scan(&row.MenuItem, &row.Sales); err != nil {
			return nil, fmt.Errorf("%w: scanning sales row: %v", ErrDatabaseError, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sales rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}

func (r *reportRepository) GetUsageBetween(start, end time.Time) ([]models.UsageRow, error) {
	query := `SELECT i.name, SUM(di.servings)::int
	          FROM drinks_orders dord
	          JOIN orders o ON o.id = dord.order_id
	          JOIN drinks_ingredients di ON di.drink_id = dord.id
	          JOIN ingredients i ON i.id = di.ingredient_id
	          WHERE o.placed_at >= $1 AND o.placed_at < $2
	          GROUP BY i.name
	          ORDER BY i.name`
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: querying ingredient usage: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	result := []models.UsageRow{}
	for rows.Next() {
		var row models.UsageRow
		if err := rows.Scan(&row.Ingredient, &row.Used); err != nil {
			return nil, fmt.Errorf("%w: scanning usage row: %v", ErrDatabaseError, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating usage rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}

func (r *reportRepository) GetHourlySales(dayStart, cutoff time.Time) ([]HourBucket, error) {
	query := `SELECT EXTRACT(HOUR FROM placed_at)::int AS sale_hour,
	                 COUNT(*)::int,
	                 COALESCE(SUM(cost), 0)::float8
	          FROM orders
	          WHERE placed_at >= $1 AND placed_at < $2
	          GROUP BY 1
	          ORDER BY 1`
	rows, err := r.db.Query(query, dayStart, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: querying hourly sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	buckets := []HourBucket{}
	for rows.Next() {
		var b HourBucket
		if err := rows.Scan(&b.Hour, &b.NumberOfSales, &b.TotalSales); err != nil {
			return nil, fmt.Errorf("%w: scanning hourly sales row: %v", ErrDatabaseError, err)
		}
		buckets = append(buckets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating hourly sales rows: %v", ErrDatabaseError, err)
	}
	return buckets, nil
}

func (r *reportRepository) GetDayTotals(dayStart, dayEnd time.Time) (*models.ZReportTotals, error) {
	totals := &models.ZReportTotals{}
	query := `SELECT
	            COALESCE(SUM(cost), 0)::float8,
	            COALESCE(SUM(cost) FILTER (WHERE payment_method = 'CASH'), 0)::float8,
	            COALESCE(SUM(cost) FILTER (WHERE payment_method = 'CARD'), 0)::float8,
	            COALESCE(SUM(cost) FILTER (WHERE payment_method = 'MOBILE'), 0)::float8
	          FROM orders
	          WHERE placed_at >= $1 AND placed_at < $2`
	err := r.db.QueryRow(query, dayStart, dayEnd).Scan(
		&totals.GrossSales, &totals.CashSales, &totals.CardSales, &totals.MobileSales,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying day totals: %v", ErrDatabaseError, err)
	}

	// First and last order's attributed employee, by placement order then id,
	// as an open/close proxy.
	openQuery := `SELECT e.name
	              FROM employees e
	              JOIN orders o ON e.id = o.employee_id
	              WHERE o.placed_at >= $1 AND o.placed_at < $2
	              ORDER BY o.placed_at ASC, e.id ASC
	              LIMIT 1`
	if err := r.db.QueryRow(openQuery, dayStart, dayEnd).Scan(&totals.OpeningEmployee); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: querying opening employee: %v", ErrDatabaseError, err)
		}
		totals.OpeningEmployee = "N/A"
	}

	closeQuery := `SELECT e.name
	               FROM employees e
	               JOIN orders o ON e.id = o.employee_id
	               WHERE o.placed_at >= $1 AND o.placed_at < $2
	               ORDER BY o.placed_at DESC, e.id ASC
	               LIMIT 1`
	if err := r.db.QueryRow(closeQuery, dayStart, dayEnd).Scan(&totals.ClosingEmployee); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: querying closing employee: %v", ErrDatabaseError, err)
		}
		totals.ClosingEmployee = "N/A"
	}

	return totals, nil
}
