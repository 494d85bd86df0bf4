package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
)

// Customer lifecycle segments by distinct order count. The boundary at
// exactly two orders belongs to Returning, not Loyal.
const (
	SegmentNew       = "New"
	SegmentReturning = "Returning"
	SegmentLoyal     = "Loyal"
)

// SegmentSummary aggregates one customer segment.
type SegmentSummary struct {
	Segment   string  `json:"segment"`
	Customers int     `json:"customers"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

// DelayReviewGroup compares review scores between delayed and on-time
// deliveries.
type DelayReviewGroup struct {
	DeliveryStatus string  `json:"delivery_status"`
	AvgReview      float64 `json:"avg_review"`
	Orders         int     `json:"orders"`
}

// PaymentSummary aggregates orders and revenue per payment method.
type PaymentSummary struct {
	PaymentType string  `json:"payment_type"`
	Orders      int     `json:"orders"`
	Revenue     float64 `json:"revenue"`
}

// segmentFor classifies a customer by distinct order count.
func segmentFor(orderCount int) string {
	switch {
	case orderCount <= 1:
		return SegmentNew
	case orderCount == 2:
		return SegmentReturning
	default:
		return SegmentLoyal
	}
}

// CustomerSegmentation groups customers (by customer_unique_id) into
// New/Returning/Loyal by distinct order count, then aggregates customer
// count, order count and price-only revenue per segment. Orders with no
// customer linkage drop out of the grouping. Segments are reported in
// lifecycle order and only when present.
func CustomerSegmentation(orders, items, customers *dataset.Table) ([]SegmentSummary, error) {
	rev, err := perOrderRevenue(items)
	if err != nil {
		return nil, err
	}
	link, err := customerLinkage(customers)
	if err != nil {
		return nil, err
	}
	if err := orders.Require("order_id", "customer_id"); err != nil {
		return nil, err
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

	type segmentAgg struct {
		customers int
		orders    int
		revenue   decimal.Decimal
	}
	agg := make(map[string]*segmentAgg, 3)
	for _, orderIDs := range perCustomer {
		segment := segmentFor(len(orderIDs))
		s := agg[segment]
		if s == nil {
			s = &segmentAgg{}
			agg[segment] = s
		}
		s.customers++
		s.orders += len(orderIDs)
		for id := range orderIDs {
			// Left join: an order without items adds nothing.
			s.revenue = s.revenue.Add(rev[id])
		}
	}

	result := make([]SegmentSummary, 0, len(agg))
	for _, segment := range []string{SegmentNew, SegmentReturning, SegmentLoyal} {
		s, ok := agg[segment]
		if !ok {
			continue
		}
		result = append(result, SegmentSummary{
			Segment:   segment,
			Customers: s.customers,
			Orders:    s.orders,
			Revenue:   round2(s.revenue),
		})
	}
	return result, nil
}

// ReviewVsDelay contrasts average review score and order count between
// delayed and on-time deliveries. Orders failing the date-validity filter, or
// with no review, are excluded (inner join). Groups are sorted by status
// label for determinism.
func ReviewVsDelay(orders, reviews *dataset.Table) ([]DelayReviewGroup, error) {
	if err := reviews.Require("order_id", "review_score"); err != nil {
		return nil, err
	}
	idCol := orders.Col("order_id")
	delayedByOrder := make(map[string]bool)
	err := eachValidDelivery(orders, func(row int, delivered, estimated time.Time) {
		id := orders.Cell(row, idCol)
		if dataset.Missing(id) {
			return
		}
		delayedByOrder[id] = delivered.After(estimated)
	})
	if err != nil {
		return nil, err
	}

	type groupAgg struct {
		scoreSum decimal.Decimal
		scored   int
		orders   map[string]struct{}
	}
	groups := make(map[string]*groupAgg, 2)
	reviewOrderCol := reviews.Col("order_id")
	scoreCol := reviews.Col("review_score")
	for i := 0; i < reviews.NumRows(); i++ {
		id := reviews.Cell(i, reviewOrderCol)
		delayed, ok := delayedByOrder[id]
		if !ok {
			continue
		}
		status := "On-Time"
		if delayed {
			status = "Delayed"
		}
		g := groups[status]
		if g == nil {
			g = &groupAgg{orders: make(map[string]struct{})}
			groups[status] = g
		}
		g.orders[id] = struct{}{}
		if score, ok := dataset.ParseFloat(reviews.Cell(i, scoreCol)); ok {
			g.scoreSum = g.scoreSum.Add(decimal.NewFromFloat(score))
			g.scored++
		}
	}

	result := make([]DelayReviewGroup, 0, len(groups))
	for status, g := range groups {
		avg := 0.0
		if g.scored > 0 {
			avg = round2(g.scoreSum.Div(decimal.NewFromInt(int64(g.scored))))
		}
		result = append(result, DelayReviewGroup{
			DeliveryStatus: status,
			AvgReview:      avg,
			Orders:         len(g.orders),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DeliveryStatus < result[j].DeliveryStatus
	})
	return result, nil
}

var paymentTitle = cases.Title(language.English)

// displayPaymentType normalizes a raw payment type for display: underscores
// become spaces, words are title-cased, and the literal "Not Defined"
// category is remapped to "Other / Unknown".
func displayPaymentType(raw string) string {
	name := paymentTitle.String(strings.ReplaceAll(raw, "_", " "))
	if name == "Not Defined" {
		return "Other / Unknown"
	}
	return name
}

// PaymentMethodAnalysis aggregates distinct orders and price-only revenue by
// payment method. Per-order revenue is left-joined onto payment rows, so an
// order with no item revenue contributes 0 rather than being excluded. An
// order split across several payment rows of the same type contributes its
// revenue once per row, mirroring the source computation; the order count
// stays distinct. Descending by revenue.
func PaymentMethodAnalysis(payments, items *dataset.Table) ([]PaymentSummary, error) {
	rev, err := perOrderRevenue(items)
	if err != nil {
		return nil, err
	}
	if err := payments.Require("order_id", "payment_type"); err != nil {
		return nil, err
	}
	orderCol := payments.Col("order_id")
	typeCol := payments.Col("payment_type")

	type paymentAgg struct {
		orders  map[string]struct{}
		revenue decimal.Decimal
	}
	agg := make(map[string]*paymentAgg)
	for i := 0; i < payments.NumRows(); i++ {
		paymentType := payments.Cell(i, typeCol)
		if dataset.Missing(paymentType) {
			continue
		}
		p := agg[paymentType]
		if p == nil {
			p = &paymentAgg{orders: make(map[string]struct{})}
			agg[paymentType] = p
		}
		id := payments.Cell(i, orderCol)
		if !dataset.Missing(id) {
			p.orders[id] = struct{}{}
			p.revenue = p.revenue.Add(rev[id])
		}
	}

	result := make([]PaymentSummary, 0, len(agg))
	for raw, p := range agg {
		result = append(result, PaymentSummary{
			PaymentType: displayPaymentType(raw),
			Orders:      len(p.orders),
			Revenue:     round2(p.revenue),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Revenue != result[j].Revenue {
			return result[i].Revenue > result[j].Revenue
		}
		return result[i].PaymentType < result[j].PaymentType
	})
	return result, nil
}
