package models

// RestockRow is one low-stock ingredient in the restock report.
type RestockRow struct {
	IngredientName string `json:"ingredientName"`
	Stock          int    `json:"stock"`
}

// SalesRow is aggregated sales for one menu item over a date range.
type SalesRow struct {
	MenuItem string  `json:"menuItem"`
	Sales    float64 `json:"sales"`
}

// UsageRow is aggregated ingredient consumption over a date range.
type UsageRow struct {
	Ingredient string `json:"ingredient"`
	Used       int    `json:"used"`
}

// XReportRow is one already-elapsed hour of the current business day.
type XReportRow struct {
	Hour          string  `json:"hour"` // "HH:00 - HH:59"
	NumberOfSales int     `json:"number_of_sales"`
	TotalSales    float64 `json:"total_sales"`
}

// ZReportRow is one metric line of the prior day's close-out report.
type ZReportRow struct {
	Metric string `json:"metric"`
	Total  string `json:"total"`
}

// ZReportTotals is the raw aggregate the Z report derives its metrics from.
type ZReportTotals struct {
	GrossSales      float64
	CashSales       float64
	CardSales       float64
	MobileSales     float64
	OpeningEmployee string
	ClosingEmployee string
}

// ReportRange is a half-open [Start, End) date range in YYYY-MM-DD.
type ReportRange struct {
	StartDate string `json:"startDate" form:"startDate" binding:"required"`
	EndDate   string `json:"endDate" form:"endDate" binding:"required"`
}
