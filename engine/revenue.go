package engine

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
)

// perOrderRevenue sums item price (freight excluded) per order id. Orders that
// appear in the items table get an entry even when every price cell is
// malformed, matching a skip-and-zero reduction. Rounding is deferred to the
// output boundary.
func perOrderRevenue(items *dataset.Table) (map[string]decimal.Decimal, error) {
	if err := items.Require("order_id", "price"); err != nil {
		return nil, err
	}
	idCol := items.Col("order_id")
	priceCol := items.Col("price")

	rev := make(map[string]decimal.Decimal)
	for i := 0; i < items.NumRows(); i++ {
		id := items.Cell(i, idCol)
		if dataset.Missing(id) {
			continue
		}
		if _, ok := rev[id]; !ok {
			rev[id] = decimal.Zero
		}
		if price, ok := dataset.ParseFloat(items.Cell(i, priceCol)); ok {
			rev[id] = rev[id].Add(decimal.NewFromFloat(price))
		}
	}
	return rev, nil
}

// customerLinkage builds the customer_id -> customer_unique_id lookup. Rows
// with a blank unique id resolve to nothing, so their orders drop out of
// customer-level grouping.
func customerLinkage(customers *dataset.Table) (map[string]string, error) {
	if err := customers.Require("customer_id", "customer_unique_id"); err != nil {
		return nil, err
	}
	idCol := customers.Col("customer_id")
	uniqueCol := customers.Col("customer_unique_id")

	link := make(map[string]string, customers.NumRows())
	for i := 0; i < customers.NumRows(); i++ {
		id := customers.Cell(i, idCol)
		unique := customers.Cell(i, uniqueCol)
		if dataset.Missing(id) || dataset.Missing(unique) {
			continue
		}
		link[id] = unique
	}
	return link, nil
}

// eachValidDelivery visits every order row where both the delivered and the
// estimated timestamp parse. Rows missing either date are excluded entirely;
// they are never treated as on time.
func eachValidDelivery(orders *dataset.Table, fn func(row int, delivered, estimated time.Time)) error {
	if err := orders.Require("order_id", "order_delivered_customer_date", "order_estimated_delivery_date"); err != nil {
		return err
	}
	deliveredCol := orders.Col("order_delivered_customer_date")
	estimatedCol := orders.Col("order_estimated_delivery_date")

	for i := 0; i < orders.NumRows(); i++ {
		delivered, ok := dataset.ParseTime(orders.Cell(i, deliveredCol))
		if !ok {
			continue
		}
		estimated, ok := dataset.ParseTime(orders.Cell(i, estimatedCol))
		if !ok {
			continue
		}
		fn(i, delivered, estimated)
	}
	return nil
}

// dayDelta returns the whole-day difference delivered-estimated, flooring
// toward negative infinity so a delivery a few hours early lands in day -1.
func dayDelta(delivered, estimated time.Time) int {
	return int(math.Floor(delivered.Sub(estimated).Hours() / 24))
}

// round2 applies the output-boundary rounding to two decimal places.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// round2f rounds a plain float at the output boundary.
func round2f(v float64) float64 {
	return round2(decimal.NewFromFloat(v))
}
