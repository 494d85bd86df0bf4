package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
)

// topCategories caps the revenue-by-category ranking.
const topCategories = 10

// CategoryRevenue is one ranked row of the category revenue chart. Category
// is the English name; the empty string is the null category for items whose
// product or translation is missing.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// DelayDistribution counts deliveries by whole-day delta against the
// estimate. All three buckets are always reported, zero included.
type DelayDistribution struct {
	Early   int `json:"early"`
	OnTime  int `json:"on_time"`
	Delayed int `json:"delayed"`
}

// Total is the number of orders with both delivery dates present and valid.
func (d DelayDistribution) Total() int { return d.Early + d.OnTime + d.Delayed }

// RevenueByCategory ranks the top product categories by item price revenue
// (freight excluded). Both joins are left joins: an item with no product row,
// or a product with no English translation, still contributes under the null
// category. Descending by exact revenue, ties broken by label, top 10;
// rounding happens only when emitting.
func RevenueByCategory(items, products, translations *dataset.Table) ([]CategoryRevenue, error) {
	if err := items.Require("product_id", "price"); err != nil {
		return nil, err
	}
	if err := products.Require("product_id", "product_category_name"); err != nil {
		return nil, err
	}
	if err := translations.Require("product_category_name", "product_category_name_english"); err != nil {
		return nil, err
	}

	category := make(map[string]string, products.NumRows())
	productCol := products.Col("product_id")
	categoryCol := products.Col("product_category_name")
	for i := 0; i < products.NumRows(); i++ {
		id := products.Cell(i, productCol)
		if dataset.Missing(id) {
			continue
		}
		category[id] = products.Cell(i, categoryCol)
	}

	english := make(map[string]string, translations.NumRows())
	nameCol := translations.Col("product_category_name")
	englishCol := translations.Col("product_category_name_english")
	for i := 0; i < translations.NumRows(); i++ {
		name := translations.Cell(i, nameCol)
		if dataset.Missing(name) {
			continue
		}
		english[name] = translations.Cell(i, englishCol)
	}

	itemProductCol := items.Col("product_id")
	itemPriceCol := items.Col("price")
	revenue := make(map[string]decimal.Decimal)
	for i := 0; i < items.NumRows(); i++ {
		price, ok := dataset.ParseFloat(items.Cell(i, itemPriceCol))
		if !ok {
			continue
		}
		label := english[category[items.Cell(i, itemProductCol)]]
		revenue[label] = revenue[label].Add(decimal.NewFromFloat(price))
	}

	type categoryTotal struct {
		label string
		total decimal.Decimal
	}
	totals := make([]categoryTotal, 0, len(revenue))
	for label, total := range revenue {
		totals = append(totals, categoryTotal{label: label, total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].total.Cmp(totals[j].total); c != 0 {
			return c > 0
		}
		return totals[i].label < totals[j].label
	})
	if len(totals) > topCategories {
		totals = totals[:topCategories]
	}

	ranked := make([]CategoryRevenue, len(totals))
	for i, c := range totals {
		ranked[i] = CategoryRevenue{Category: c.label, Revenue: round2(c.total)}
	}
	return ranked, nil
}

// DeliveryDelayDistribution buckets every valid-date order into exactly one
// of Early (negative day delta), On Time (zero) or Delayed (positive). The
// bucket sum equals the count of orders with both dates present and valid.
func DeliveryDelayDistribution(orders *dataset.Table) (DelayDistribution, error) {
	var dist DelayDistribution
	err := eachValidDelivery(orders, func(row int, delivered, estimated time.Time) {
		switch delta := dayDelta(delivered, estimated); {
		case delta < 0:
			dist.Early++
		case delta == 0:
			dist.OnTime++
		default:
			dist.Delayed++
		}
	})
	if err != nil {
		return DelayDistribution{}, err
	}
	return dist, nil
}
