package inout

import "github.com/Sriram-Harshit/ecommerce-analytics/engine"

// DashboardRep bundles every KPI, chart and tier-2 analysis the dashboard
// page renders.
type DashboardRep struct {
	OrdersCount   int      `json:"orders_count"`
	TotalRevenue  float64  `json:"total_revenue"`
	DelayedOrders int      `json:"delayed_orders"`
	AvgReview     *float64 `json:"avg_review"` // null when no review carries a score
	RepeatRate    float64  `json:"repeat_rate"`

	OrdersOverTime    []engine.MonthlyOrders   `json:"orders_time_data"`
	RevenueByCategory []engine.CategoryRevenue `json:"revenue_by_category"`
	DelayDistribution engine.DelayDistribution `json:"delay_distribution"`
	AOVOverTime       engine.AOVSeries         `json:"aov_over_time"`

	CustomerSegments []engine.SegmentSummary   `json:"customer_segments"`
	ReviewDelay      []engine.DelayReviewGroup `json:"review_delay"`
	PaymentMethods   []engine.PaymentSummary   `json:"payment_methods"`
	RetentionInsight engine.InsightResult      `json:"retention_insight"`
}

// TableQualityRep is the data-quality report for one table.
type TableQualityRep struct {
	Table         string         `json:"table"`
	Summary       engine.Summary `json:"summary"`
	MissingValues map[string]int `json:"missing_values"`
	DuplicateRows int            `json:"duplicate_rows"`
}

// QualityRep is the full data-quality and operational-risk report.
type QualityRep struct {
	Tables                []TableQualityRep `json:"tables"`
	OrdersWithoutItems    int               `json:"orders_without_items"`
	OrdersWithoutCustomer int               `json:"orders_without_customer"`
	Risks                 engine.RiskReport `json:"risks"`
}

// MetricRow is one exported KPI line.
type MetricRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}
