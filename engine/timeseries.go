package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
)

// MonthlyOrders is one (year, month) bucket of the order volume trend.
type MonthlyOrders struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Orders int `json:"order_count"`
}

// AOVSeries carries the monthly average-order-value chart as parallel
// label/value sequences, months ascending.
type AOVSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// OrdersOverTime buckets distinct orders by purchase year and month. Rows
// with an unparseable purchase timestamp are dropped; months with no orders
// do not appear (no gap-filling). Ascending by (year, month).
func OrdersOverTime(orders *dataset.Table) ([]MonthlyOrders, error) {
	if err := orders.Require("order_id", "order_purchase_timestamp"); err != nil {
		return nil, err
	}
	idCol := orders.Col("order_id")
	purchaseCol := orders.Col("order_purchase_timestamp")

	type bucket struct{ year, month int }
	counts := make(map[bucket]map[string]struct{})
	for i := 0; i < orders.NumRows(); i++ {
		ts, ok := dataset.ParseTime(orders.Cell(i, purchaseCol))
		if !ok {
			continue
		}
		id := orders.Cell(i, idCol)
		if dataset.Missing(id) {
			continue
		}
		b := bucket{ts.Year(), int(ts.Month())}
		if counts[b] == nil {
			counts[b] = make(map[string]struct{})
		}
		counts[b][id] = struct{}{}
	}

	result := make([]MonthlyOrders, 0, len(counts))
	for b, ids := range counts {
		result = append(result, MonthlyOrders{Year: b.year, Month: b.month, Orders: len(ids)})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Month < result[j].Month
	})
	return result, nil
}

// AOVOverTime computes the average order value per calendar month. Per-order
// revenue is item price only, freight excluded (sale price, not gross
// receipts; see TotalRevenue for the other definition). Orders without any
// item row are excluded by the inner join, not zero-filled. AOV = monthly
// revenue / distinct orders that month, rounded to two decimals.
func AOVOverTime(orders, items *dataset.Table) (AOVSeries, error) {
	rev, err := perOrderRevenue(items)
	if err != nil {
		return AOVSeries{}, err
	}
	if err := orders.Require("order_id", "order_purchase_timestamp"); err != nil {
		return AOVSeries{}, err
	}
	idCol := orders.Col("order_id")
	purchaseCol := orders.Col("order_purchase_timestamp")

	type monthly struct {
		revenue decimal.Decimal
		orders  map[string]struct{}
	}
	buckets := make(map[string]*monthly)
	for i := 0; i < orders.NumRows(); i++ {
		id := orders.Cell(i, idCol)
		orderRevenue, hasItems := rev[id]
		if dataset.Missing(id) || !hasItems {
			continue
		}
		ts, ok := dataset.ParseTime(orders.Cell(i, purchaseCol))
		if !ok {
			continue
		}
		key := monthKey(ts)
		m := buckets[key]
		if m == nil {
			m = &monthly{orders: make(map[string]struct{})}
			buckets[key] = m
		}
		m.revenue = m.revenue.Add(orderRevenue)
		m.orders[id] = struct{}{}
	}

	labels := make([]string, 0, len(buckets))
	for key := range buckets {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	series := AOVSeries{Labels: labels, Values: make([]float64, 0, len(labels))}
	for _, key := range labels {
		m := buckets[key]
		aov := m.revenue.Div(decimal.NewFromInt(int64(len(m.orders))))
		series.Values = append(series.Values, round2(aov))
	}
	return series, nil
}

// monthKey is kept close to the bucketing logic so both trend functions agree
// on what a calendar month means.
func monthKey(ts time.Time) string { return ts.Format("2006-01") }
