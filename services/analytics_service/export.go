package analytics_service

import (
	"strconv"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
	"github.com/Sriram-Harshit/ecommerce-analytics/engine"
	"github.com/Sriram-Harshit/ecommerce-analytics/inout"
)

// noDataValue marks a KPI with no underlying data in the export.
const noDataValue = "no data"

// ExportKPIs computes the five headline KPIs as ordered metric/value rows,
// ready for serialization into the downloadable report.
func (s *DashboardService) ExportKPIs() ([]inout.MetricRow, error) {
	orders, err := s.data.Get(dataset.TableOrders)
	if err != nil {
		return nil, err
	}
	customers, err := s.data.Get(dataset.TableCustomers)
	if err != nil {
		return nil, err
	}
	items, err := s.data.Get(dataset.TableOrderItems)
	if err != nil {
		return nil, err
	}
	reviews, err := s.data.Get(dataset.TableReviews)
	if err != nil {
		return nil, err
	}

	totalOrders, err := engine.TotalOrders(orders)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := engine.TotalRevenue(items)
	if err != nil {
		return nil, err
	}
	delayed, err := engine.DelayedOrders(orders)
	if err != nil {
		return nil, err
	}
	avgReview, hasReviews, err := engine.AverageReviewScore(reviews)
	if err != nil {
		return nil, err
	}
	repeatRate, err := engine.RepeatCustomerRate(orders, customers)
	if err != nil {
		return nil, err
	}

	reviewValue := noDataValue
	if hasReviews {
		reviewValue = formatValue(avgReview)
	}

	return []inout.MetricRow{
		{Metric: "Total Orders", Value: strconv.Itoa(totalOrders)},
		{Metric: "Total Revenue", Value: formatValue(totalRevenue)},
		{Metric: "Delayed Orders", Value: strconv.Itoa(delayed)},
		{Metric: "Average Review Score", Value: reviewValue},
		{Metric: "Repeat Customer Rate (%)", Value: formatValue(repeatRate)},
	}, nil
}

// formatValue renders an already-rounded metric without trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
