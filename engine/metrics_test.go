package engine

import (
	"errors"
	"testing"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
)

func newTable(name string, cols []string, rows ...[]string) *dataset.Table {
	return dataset.New(name, cols, rows)
}

func ordersTable(rows ...[]string) *dataset.Table {
	return newTable("orders", []string{
		"order_id", "customer_id", "order_purchase_timestamp",
		"order_delivered_customer_date", "order_estimated_delivery_date",
	}, rows...)
}

func TestTotalOrdersCountsDistinctIDs(t *testing.T) {
	orders := newTable("orders", []string{"order_id"},
		[]string{"o1"},
		[]string{"o2"},
		[]string{"o1"}, // duplicate row must not inflate the count
		[]string{""},   // missing id is not an order
	)
	got, err := TotalOrders(orders)
	if err != nil {
		t.Fatalf("TotalOrders: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected 2 distinct orders, got %d", got)
	}
}

func TestTotalOrdersEmptyInput(t *testing.T) {
	got, err := TotalOrders(newTable("orders", []string{"order_id"}))
	if err != nil {
		t.Fatalf("TotalOrders: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got)
	}
}

func TestTotalOrdersMissingColumn(t *testing.T) {
	_, err := TotalOrders(newTable("orders", []string{"not_order_id"}))
	var schemaErr *dataset.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Table != "orders" {
		t.Fatalf("expected schema error for orders, got %q", schemaErr.Table)
	}
}

func TestTotalRevenueSumsPriceAndFreight(t *testing.T) {
	items := newTable("order_items", []string{"order_id", "price", "freight_value"},
		[]string{"o1", "100.10", "10.05"},
		[]string{"o1", "50.00", "5.00"},
		[]string{"o2", "bad", "1.00"}, // malformed price: row excluded
		[]string{"o2", "20.00", ""},   // missing freight: row excluded
	)
	got, err := TotalRevenue(items)
	if err != nil {
		t.Fatalf("TotalRevenue: %v", err)
	}
	if got != 165.15 {
		t.Fatalf("expected 165.15, got %v", got)
	}
}

func TestTotalRevenueEmptyInput(t *testing.T) {
	got, err := TotalRevenue(newTable("order_items", []string{"price", "freight_value"}))
	if err != nil {
		t.Fatalf("TotalRevenue: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0.0 for empty input, got %v", got)
	}
}

func TestDelayedOrders(t *testing.T) {
	orders := ordersTable(
		[]string{"o1", "c1", "", "2024-01-10", "2024-01-05"}, // delayed
		[]string{"o2", "c2", "", "2024-01-02", "2024-01-05"}, // early
		[]string{"o3", "c3", "", "2024-01-05", "2024-01-05"}, // equal is never delayed
		[]string{"o4", "c4", "", "not-a-date", "2024-01-05"}, // excluded
		[]string{"o5", "c5", "", "2024-01-10", ""},           // excluded
	)
	got, err := DelayedOrders(orders)
	if err != nil {
		t.Fatalf("DelayedOrders: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1 delayed order, got %d", got)
	}
}

func TestAverageReviewScore(t *testing.T) {
	reviews := newTable("reviews", []string{"order_id", "review_score"},
		[]string{"o1", "5"},
		[]string{"o2", "4"},
		[]string{"o3", "junk"}, // excluded from the mean
	)
	got, ok, err := AverageReviewScore(reviews)
	if err != nil {
		t.Fatalf("AverageReviewScore: %v", err)
	}
	if !ok {
		t.Fatal("expected review data to be present")
	}
	if got != 4.5 {
		t.Fatalf("expected mean 4.5, got %v", got)
	}
}

func TestAverageReviewScoreNoData(t *testing.T) {
	reviews := newTable("reviews", []string{"order_id", "review_score"},
		[]string{"o1", ""},
	)
	_, ok, err := AverageReviewScore(reviews)
	if err != nil {
		t.Fatalf("AverageReviewScore: %v", err)
	}
	if ok {
		t.Fatal("expected the no-data sentinel for an unscored review set")
	}
}

func customersTable(rows ...[]string) *dataset.Table {
	return newTable("customers", []string{"customer_id", "customer_unique_id"}, rows...)
}

func TestRepeatCustomerRateGroupsByUniqueID(t *testing.T) {
	// c1 and c2 are the same real-world customer behind two surrogate ids.
	customers := customersTable(
		[]string{"c1", "u1"},
		[]string{"c2", "u1"},
		[]string{"c3", "u2"},
	)
	orders := ordersTable(
		[]string{"o1", "c1", "", "", ""},
		[]string{"o2", "c2", "", "", ""},
		[]string{"o3", "c3", "", "", ""},
	)
	got, err := RepeatCustomerRate(orders, customers)
	if err != nil {
		t.Fatalf("RepeatCustomerRate: %v", err)
	}
	// u1 has two distinct orders, u2 has one: 1 of 2 customers repeats.
	if got != 50.0 {
		t.Fatalf("expected repeat rate 50.0, got %v", got)
	}
}

func TestRepeatCustomerRateZeroCustomers(t *testing.T) {
	got, err := RepeatCustomerRate(ordersTable(), customersTable())
	if err != nil {
		t.Fatalf("RepeatCustomerRate: %v", err)
	}
	if got != 0.0 {
		t.Fatalf("expected 0.0 for zero customers, got %v", got)
	}
}

func TestRepeatCustomerRateMonotonicInConversions(t *testing.T) {
	customers := customersTable(
		[]string{"c1", "u1"},
		[]string{"c2", "u2"},
		[]string{"c3", "u3"},
	)
	before := ordersTable(
		[]string{"o1", "c1", "", "", ""},
		[]string{"o2", "c1", "", "", ""},
		[]string{"o3", "c2", "", "", ""},
		[]string{"o4", "c3", "", "", ""},
	)
	// Same customer count, but u2 converts from one order to two.
	after := ordersTable(
		[]string{"o1", "c1", "", "", ""},
		[]string{"o2", "c1", "", "", ""},
		[]string{"o3", "c2", "", "", ""},
		[]string{"o5", "c2", "", "", ""},
		[]string{"o4", "c3", "", "", ""},
	)

	rateBefore, err := RepeatCustomerRate(before, customers)
	if err != nil {
		t.Fatalf("RepeatCustomerRate(before): %v", err)
	}
	rateAfter, err := RepeatCustomerRate(after, customers)
	if err != nil {
		t.Fatalf("RepeatCustomerRate(after): %v", err)
	}
	if rateAfter < rateBefore {
		t.Fatalf("rate decreased after a conversion: %v -> %v", rateBefore, rateAfter)
	}
}

func TestRepeatCustomerRateSkipsUnlinkedOrders(t *testing.T) {
	customers := customersTable([]string{"c1", "u1"})
	orders := ordersTable(
		[]string{"o1", "c1", "", "", ""},
		[]string{"o2", "ghost", "", "", ""}, // no customer row: drops out
	)
	got, err := RepeatCustomerRate(orders, customers)
	if err != nil {
		t.Fatalf("RepeatCustomerRate: %v", err)
	}
	if got != 0.0 {
		t.Fatalf("expected 0.0 with a single one-order customer, got %v", got)
	}
}
