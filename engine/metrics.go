// Package engine derives business metrics, aggregates, data-quality
// diagnostics and retention insights from the e-commerce dataset tables.
// Every exported function is pure: it reads its table arguments, shares no
// state with any other function, and may run concurrently with the rest.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
)

// TotalOrders counts distinct order ids. Duplicate rows and join fan-out can
// never inflate the result. Empty input yields 0.
func TotalOrders(orders *dataset.Table) (int, error) {
	if err := orders.Require("order_id"); err != nil {
		return 0, err
	}
	idCol := orders.Col("order_id")

	seen := make(map[string]struct{}, orders.NumRows())
	for i := 0; i < orders.NumRows(); i++ {
		id := orders.Cell(i, idCol)
		if dataset.Missing(id) {
			continue
		}
		seen[id] = struct{}{}
	}
	return len(seen), nil
}

// TotalRevenue sums price+freight across all item rows: gross receipts
// including shipping. A row contributes only when both values parse. Rounded
// to two decimals at return; empty input yields 0.
func TotalRevenue(items *dataset.Table) (float64, error) {
	if err := items.Require("price", "freight_value"); err != nil {
		return 0, err
	}
	priceCol := items.Col("price")
	freightCol := items.Col("freight_value")

	total := decimal.Zero
	for i := 0; i < items.NumRows(); i++ {
		price, ok := dataset.ParseFloat(items.Cell(i, priceCol))
		if !ok {
			continue
		}
		freight, ok := dataset.ParseFloat(items.Cell(i, freightCol))
		if !ok {
			continue
		}
		total = total.Add(decimal.NewFromFloat(price).Add(decimal.NewFromFloat(freight)))
	}
	return round2(total), nil
}

// DelayedOrders counts distinct orders delivered strictly after their
// estimated date. Rows with a missing or malformed date on either side are
// excluded, not counted as on time.
func DelayedOrders(orders *dataset.Table) (int, error) {
	idCol := orders.Col("order_id")
	delayed := make(map[string]struct{})
	err := eachValidDelivery(orders, func(row int, delivered, estimated time.Time) {
		if !delivered.After(estimated) {
			return
		}
		id := orders.Cell(row, idCol)
		if dataset.Missing(id) {
			return
		}
		delayed[id] = struct{}{}
	})
	if err != nil {
		return 0, err
	}
	return len(delayed), nil
}

// AverageReviewScore returns the mean review score rounded to two decimals.
// The second return is false when no row carries a parseable score; callers
// must treat that as "no data" rather than a numeric answer.
func AverageReviewScore(reviews *dataset.Table) (float64, bool, error) {
	if err := reviews.Require("review_score"); err != nil {
		return 0, false, err
	}
	scoreCol := reviews.Col("review_score")

	sum := decimal.Zero
	n := 0
	for i := 0; i < reviews.NumRows(); i++ {
		score, ok := dataset.ParseFloat(reviews.Cell(i, scoreCol))
		if !ok {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(score))
		n++
	}
	if n == 0 {
		return 0, false, nil
	}
	return round2(sum.Div(decimal.NewFromInt(int64(n)))), true, nil
}

// RepeatCustomerRate is the percentage of real customers (grouped by
// customer_unique_id, never the surrogate customer_id) with more than one
// distinct order. Orders with no customer linkage drop out of the grouping.
// Zero customers yields 0.0, not a division error.
func RepeatCustomerRate(orders, customers *dataset.Table) (float64, error) {
	if err := orders.Require("order_id", "customer_id"); err != nil {
		return 0, err
	}
	link, err := customerLinkage(customers)
	if err != nil {
		return 0, err
	}
	idCol := orders.Col("order_id")
	customerCol := orders.Col("customer_id")

	perCustomer := make(map[string]map[string]struct{})
	for i := 0; i < orders.NumRows(); i++ {
		id := orders.Cell(i, idCol)
		if dataset.Missing(id) {
			continue
		}
		unique, ok := link[orders.Cell(i, customerCol)]
		if !ok {
			continue
		}
		if perCustomer[unique] == nil {
			perCustomer[unique] = make(map[string]struct{})
		}
		perCustomer[unique][id] = struct{}{}
	}

	total := len(perCustomer)
	if total == 0 {
		return 0, nil
	}
	repeat := 0
	for _, orderIDs := range perCustomer {
		if len(orderIDs) > 1 {
			repeat++
		}
	}
	return round2f(float64(repeat) / float64(total) * 100), nil
}
