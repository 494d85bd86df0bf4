package engine

import (
	"strings"
	"time"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
)

// Diagnostic thresholds for the operational risk flags.
const (
	delayRiskThreshold  = 20.0
	reviewRiskThreshold = 15.0
	lowReviewScore      = 2.0
)

// Summary is the basic shape of a table.
type Summary struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// RiskReport carries the high-level operational risk indicators. The
// diagnostics never fail on bad data; they report it.
type RiskReport struct {
	DelayRate     float64 `json:"delay_rate_percent"`
	LowReviewRate float64 `json:"low_review_percent"`
	DelayRisk     bool    `json:"delay_risk_flag"`
	ReviewRisk    bool    `json:"review_risk_flag"`
}

// DatasetSummary reports row and column counts.
func DatasetSummary(t *dataset.Table) Summary {
	return Summary{Rows: t.NumRows(), Columns: t.NumCols()}
}

// MissingValuesReport counts missing cells per column; columns with zero
// missing values are omitted.
func MissingValuesReport(t *dataset.Table) map[string]int {
	counts := make(map[string]int)
	for col, name := range t.Columns() {
		missing := 0
		for row := 0; row < t.NumRows(); row++ {
			if dataset.Missing(t.Cell(row, col)) {
				missing++
			}
		}
		if missing > 0 {
			counts[name] += missing
		}
	}
	return counts
}

// DuplicateReport counts fully duplicate rows: every occurrence of a row
// beyond its first.
func DuplicateReport(t *dataset.Table) int {
	seen := make(map[string]struct{}, t.NumRows())
	duplicates := 0
	cells := make([]string, t.NumCols())
	for row := 0; row < t.NumRows(); row++ {
		for col := range cells {
			cells[col] = t.Cell(row, col)
		}
		key := strings.Join(cells, "\x1f")
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicates
}

// OrderItemsIntegrityCheck counts distinct orders with no matching order-item
// rows: broken joins that silently drop revenue.
func OrderItemsIntegrityCheck(orders, items *dataset.Table) (int, error) {
	if err := orders.Require("order_id"); err != nil {
		return 0, err
	}
	if err := items.Require("order_id"); err != nil {
		return 0, err
	}

	withItems := make(map[string]struct{}, items.NumRows())
	itemOrderCol := items.Col("order_id")
	for i := 0; i < items.NumRows(); i++ {
		id := items.Cell(i, itemOrderCol)
		if dataset.Missing(id) {
			continue
		}
		withItems[id] = struct{}{}
	}

	orphaned := make(map[string]struct{})
	orderCol := orders.Col("order_id")
	for i := 0; i < orders.NumRows(); i++ {
		id := orders.Cell(i, orderCol)
		if dataset.Missing(id) {
			continue
		}
		if _, ok := withItems[id]; !ok {
			orphaned[id] = struct{}{}
		}
	}
	return len(orphaned), nil
}

// CustomerLinkageCheck counts orders whose customer_id has no matching
// customer row. A missing customer_id cell can never match, so it counts.
func CustomerLinkageCheck(orders, customers *dataset.Table) (int, error) {
	if err := orders.Require("customer_id"); err != nil {
		return 0, err
	}
	if err := customers.Require("customer_id"); err != nil {
		return 0, err
	}

	known := make(map[string]struct{}, customers.NumRows())
	customerCol := customers.Col("customer_id")
	for i := 0; i < customers.NumRows(); i++ {
		id := customers.Cell(i, customerCol)
		if dataset.Missing(id) {
			continue
		}
		known[id] = struct{}{}
	}

	unlinked := 0
	orderCustomerCol := orders.Col("customer_id")
	for i := 0; i < orders.NumRows(); i++ {
		id := orders.Cell(i, orderCustomerCol)
		if dataset.Missing(id) {
			unlinked++
			continue
		}
		if _, ok := known[id]; !ok {
			unlinked++
		}
	}
	return unlinked, nil
}

// RiskHighlights computes the delivery delay rate (over valid-date orders,
// distinct ids) and the share of reviews scoring at or below two, and raises
// the corresponding risk flags. An empty review set yields a 0% low-review
// rate, not an error.
func RiskHighlights(orders, reviews *dataset.Table) (RiskReport, error) {
	idCol := orders.Col("order_id")
	delivered := make(map[string]struct{})
	delayed := make(map[string]struct{})
	err := eachValidDelivery(orders, func(row int, deliveredAt, estimatedAt time.Time) {
		id := orders.Cell(row, idCol)
		if dataset.Missing(id) {
			return
		}
		delivered[id] = struct{}{}
		if deliveredAt.After(estimatedAt) {
			delayed[id] = struct{}{}
		}
	})
	if err != nil {
		return RiskReport{}, err
	}
	if err := reviews.Require("review_score"); err != nil {
		return RiskReport{}, err
	}

	delayRate := 0.0
	if len(delivered) > 0 {
		delayRate = float64(len(delayed)) / float64(len(delivered)) * 100
	}

	scoreCol := reviews.Col("review_score")
	low := 0
	for i := 0; i < reviews.NumRows(); i++ {
		if score, ok := dataset.ParseFloat(reviews.Cell(i, scoreCol)); ok && score <= lowReviewScore {
			low++
		}
	}
	lowReviewRate := 0.0
	if reviews.NumRows() > 0 {
		lowReviewRate = float64(low) / float64(reviews.NumRows()) * 100
	}

	return RiskReport{
		DelayRate:     round2f(delayRate),
		LowReviewRate: round2f(lowReviewRate),
		DelayRisk:     delayRate > delayRiskThreshold,
		ReviewRisk:    lowReviewRate > reviewRiskThreshold,
	}, nil
}
