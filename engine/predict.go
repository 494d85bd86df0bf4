package engine

import (
	"github.com/shopspring/decimal"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
)

// DelayObservation is one row of the feature-target dataset consumed by the
// external delay classifier. The engine only prepares the data; training and
// scoring live outside this module.
type DelayObservation struct {
	OrderID      string  `json:"order_id"`
	FreightValue float64 `json:"freight_value"`
	Delayed      int     `json:"is_delayed"`
}

// PrepareDelayDataset joins per-order freight totals onto orders (inner
// join: orders without item rows are excluded), drops rows failing the
// delivery date validity filter, and labels each remaining order 1 when it
// was delivered after the estimate. Output follows orders row order.
func PrepareDelayDataset(orders, items *dataset.Table) ([]DelayObservation, error) {
	if err := items.Require("order_id", "freight_value"); err != nil {
		return nil, err
	}
	itemOrderCol := items.Col("order_id")
	freightCol := items.Col("freight_value")

	freight := make(map[string]decimal.Decimal)
	for i := 0; i < items.NumRows(); i++ {
		id := items.Cell(i, itemOrderCol)
		if dataset.Missing(id) {
			continue
		}
		if _, ok := freight[id]; !ok {
			freight[id] = decimal.Zero
		}
		if v, ok := dataset.ParseFloat(items.Cell(i, freightCol)); ok {
			freight[id] = freight[id].Add(decimal.NewFromFloat(v))
		}
	}

	if err := orders.Require("order_id", "order_delivered_customer_date", "order_estimated_delivery_date"); err != nil {
		return nil, err
	}
	idCol := orders.Col("order_id")
	deliveredCol := orders.Col("order_delivered_customer_date")
	estimatedCol := orders.Col("order_estimated_delivery_date")

	observations := make([]DelayObservation, 0, orders.NumRows())
	for i := 0; i < orders.NumRows(); i++ {
		id := orders.Cell(i, idCol)
		total, hasItems := freight[id]
		if dataset.Missing(id) || !hasItems {
			continue
		}
		delivered, ok := dataset.ParseTime(orders.Cell(i, deliveredCol))
		if !ok {
			continue
		}
		estimated, ok := dataset.ParseTime(orders.Cell(i, estimatedCol))
		if !ok {
			continue
		}
		delayed := 0
		if delivered.After(estimated) {
			delayed = 1
		}
		observations = append(observations, DelayObservation{
			OrderID:      id,
			FreightValue: round2(total),
			Delayed:      delayed,
		})
	}
	return observations, nil
}
