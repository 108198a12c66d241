package services

import (
	"testing"
	"time"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

type stubReportRepo struct {
	lowStock  []models.RestockRow
	sales     []models.SalesRow
	usage     []models.UsageRow
	buckets   []repositories.HourBucket
	totals    *models.ZReportTotals
	lastStart time.Time
	lastEnd   time.Time
}

func (s *stubReportRepo) GetLowStockIngredients(threshold int) ([]models.RestockRow, error) {
	return s.lowStock, nil
}

func (s *stubReportRepo) GetSalesBetween(start, end time.Time) ([]models.SalesRow, error) {
	s.lastStart, s.lastEnd = start, end
	return s.sales, nil
}

func (s *stubReportRepo) GetUsageBetween(start, end time.Time) ([]models.UsageRow, error) {
	s.lastStart, s.lastEnd = start, end
	return s.usage, nil
}

func (s *stubReportRepo) GetHourlySales(dayStart, cutoff time.Time) ([]repositories.HourBucket, error) {
	s.lastStart, s.lastEnd = dayStart, cutoff
	return s.buckets, nil
}

func (s *stubReportRepo) GetDayTotals(dayStart, dayEnd time.Time) (*models.ZReportTotals, error) {
	s.lastStart, s.lastEnd = dayStart, dayEnd
	return s.totals, nil
}

func newTestReportService(repo repositories.ReportRepository) *ReportService {
	cfg := config.Default()
	return NewReportService(repo, cfg.Pricing, cfg.Reports)
}

func metricValue(t *testing.T, rows []models.ZReportRow, metric string) string {
	t.Helper()
	for _, row := range rows {
		if row.Metric == metric {
			return row.Total
		}
	}
	t.Fatalf("metric %q not found in %v", metric, rows)
	return ""
}

func TestZReportDerivations(t *testing.T) {
	repo := &stubReportRepo{totals: &models.ZReportTotals{
		GrossSales:      30.00,
		CashSales:       10.00,
		CardSales:       20.00,
		MobileSales:     0,
		OpeningEmployee: "Avery",
		ClosingEmployee: "Jordan",
	}}
	svc := newTestReportService(repo)

	rows, err := svc.ZReport(time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ZReport: %v", err)
	}

	cases := map[string]string{
		"Gross Sales":          "$30",
		"Tax Collected":        "$2.475",
		"Cash Sales":           "$10",
		"Card Sales":           "$20",
		"Card Processing Fees": "$0.4",
		"Net Revenue":          "$27.125",
		"Opening Employee":     "Avery",
		"Closing Employee":     "Jordan",
	}
	for metric, want := range cases {
		if got := metricValue(t, rows, metric); got != want {
			t.Errorf("%s = %q, want %q", metric, got, want)
		}
	}

	wantStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if !repo.lastStart.Equal(wantStart) || !repo.lastEnd.Equal(wantEnd) {
		t.Errorf("window = [%v, %v), want [%v, %v)", repo.lastStart, repo.lastEnd, wantStart, wantEnd)
	}
}

func TestXReportShapesElapsedHours(t *testing.T) {
	repo := &stubReportRepo{buckets: []repositories.HourBucket{
		{Hour: 10, NumberOfSales: 2, TotalSales: 12.50},
	}}
	svc := newTestReportService(repo)

	now := time.Date(2026, 8, 31, 11, 30, 0, 0, time.UTC)
	rows, err := svc.XReport(now)
	if err != nil {
		t.Fatalf("XReport: %v", err)
	}

	if len(rows) != 11 {
		t.Fatalf("rows = %d, want 11 (hours 0-10, hour 11 still in progress)", len(rows))
	}
	if rows[10].Hour != "10:00 - 10:59" {
		t.Errorf("hour label = %q, want %q", rows[10].Hour, "10:00 - 10:59")
	}
	if rows[10].NumberOfSales != 2 || rows[10].TotalSales != 12.50 {
		t.Errorf("bucket 10 = %+v", rows[10])
	}
	if rows[3].NumberOfSales != 0 || rows[3].TotalSales != 0 {
		t.Errorf("empty hour not zero filled: %+v", rows[3])
	}

	wantCut := time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC)
	if !repo.lastEnd.Equal(wantCut) {
		t.Errorf("query cutoff = %v, want %v (top of the current hour)", repo.lastEnd, wantCut)
	}
}

func TestSalesRangeIsInclusiveOfEndDate(t *testing.T) {
	repo := &stubReportRepo{}
	svc := newTestReportService(repo)

	_, err := svc.Sales(models.ReportRange{StartDate: "2026-08-01", EndDate: "2026-08-02"})
	if err != nil {
		t.Fatalf("Sales: %v", err)
	}

	wantEnd := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	if !repo.lastEnd.Equal(wantEnd) {
		t.Errorf("end bound = %v, want %v", repo.lastEnd, wantEnd)
	}
}

func TestSalesRejectsInvertedRange(t *testing.T) {
	svc := newTestReportService(&stubReportRepo{})

	if _, err := svc.Sales(models.ReportRange{StartDate: "2026-08-05", EndDate: "2026-08-01"}); err == nil {
		t.Fatal("expected error for inverted range")
	}
	if _, err := svc.Usage(models.ReportRange{StartDate: "bad", EndDate: "2026-08-01"}); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
