package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

// ReportService derives the back-office reports from order and ledger data.
type ReportService struct {
	repo        repositories.ReportRepository
	taxRate     decimal.Decimal
	cardFeeRate decimal.Decimal
	lowStock    int
}

// NewReportService creates a new instance of ReportService.
func NewReportService(repo repositories.ReportRepository, pricingCfg config.PricingConfig, reportsCfg config.ReportsConfig) *ReportService {
	return &ReportService{
		repo:        repo,
		taxRate:     decimal.NewFromFloat(pricingCfg.TaxRate),
		cardFeeRate: decimal.NewFromFloat(reportsCfg.CardFeeRate),
		lowStock:    reportsCfg.LowStockThreshold,
	}
}

// Restock lists ingredients at or below the low-stock threshold, lowest first.
func (s *ReportService) Restock() ([]models.RestockRow, error) {
	return s.repo.GetLowStockIngredients(s.lowStock)
}

// Sales sums revenue per menu item over the date range. Both dates are
// inclusive; the query window is half-open at the midnight after EndDate.
func (s *ReportService) Sales(r models.ReportRange) ([]models.SalesRow, error) {
	start, end, err := parseRange(r)
	if err != nil {
		return nil, err
	}
	return s.repo.GetSalesBetween(start, end)
}

// Usage sums servings consumed per ingredient over the date range.
func (s *ReportService) Usage(r models.ReportRange) ([]models.UsageRow, error) {
	start, end, err := parseRange(r)
	if err != nil {
		return nil, err
	}
	return s.repo.GetUsageBetween(start, end)
}

// XReport buckets today's orders by hour, one row per fully elapsed hour of
// the business day. The in-progress hour is excluded until it completes; hours
// without sales appear with zero counts.
func (s *ReportService) XReport(now time.Time) ([]models.XReportRow, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hourCut := dayStart.Add(time.Duration(now.Hour()) * time.Hour)

	buckets, err := s.repo.GetHourlySales(dayStart, hourCut)
	if err != nil {
		return nil, err
	}
	byHour := make(map[int]repositories.HourBucket, len(buckets))
	for _, b := range buckets {
		byHour[b.Hour] = b
	}

	rows := make([]models.XReportRow, 0, now.Hour())
	for h := 0; h < now.Hour(); h++ {
		row := models.XReportRow{Hour: fmt.Sprintf("%02d:00 - %02d:59", h, h)}
		if b, ok := byHour[h]; ok {
			row.NumberOfSales = b.NumberOfSales
			row.TotalSales = b.TotalSales
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ZReport closes out the prior business day: gross sales, derived tax, the
// payment split, card processing fees and net revenue, plus the opening and
// closing employees. Derived amounts are exact, not rounded to cents.
func (s *ReportService) ZReport(now time.Time) ([]models.ZReportRow, error) {
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayStart := dayEnd.AddDate(0, 0, -1)

	totals, err := s.repo.GetDayTotals(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	gross := decimal.NewFromFloat(totals.GrossSales)
	tax := gross.Mul(s.taxRate)
	fees := decimal.NewFromFloat(totals.CardSales).Mul(s.cardFeeRate)
	revenue := gross.Sub(tax).Sub(fees)

	return []models.ZReportRow{
		{Metric: "Gross Sales", Total: "$" + gross.String()},
		{Metric: "Tax Collected", Total: "$" + tax.String()},
		{Metric: "Cash Sales", Total: "$" + decimal.NewFromFloat(totals.CashSales).String()},
		{Metric: "Card Sales", Total: "$" + decimal.NewFromFloat(totals.CardSales).String()},
		{Metric: "Mobile Sales", Total: "$" + decimal.NewFromFloat(totals.MobileSales).String()},
		{Metric: "Card Processing Fees", Total: "$" + fees.String()},
		{Metric: "Net Revenue", Total: "$" + revenue.String()},
		{Metric: "Opening Employee", Total: totals.OpeningEmployee},
		{Metric: "Closing Employee", Total: totals.ClosingEmployee},
	}, nil
}

func parseRange(r models.ReportRange) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate %q", r.StartDate)
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate %q", r.EndDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate precedes startDate")
	}
	return start, end.AddDate(0, 0, 1), nil
}
