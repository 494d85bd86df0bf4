package engine

import (
	"reflect"
	"testing"
)

func TestOrdersOverTimeSortsAcrossYears(t *testing.T) {
	orders := ordersTable(
		[]string{"o1", "c1", "2018-03-10 09:00:00", "", ""},
		[]string{"o2", "c2", "2017-12-01 12:30:00", "", ""},
		[]string{"o3", "c3", "2018-03-22 18:00:00", "", ""},
		[]string{"o3", "c3", "2018-03-22 18:00:00", "", ""}, // duplicate id, same month
		[]string{"o4", "c4", "garbage", "", ""},             // dropped
	)
	got, err := OrdersOverTime(orders)
	if err != nil {
		t.Fatalf("OrdersOverTime: %v", err)
	}
	want := []MonthlyOrders{
		{Year: 2017, Month: 12, Orders: 1},
		{Year: 2018, Month: 3, Orders: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOrdersOverTimeNoGapFilling(t *testing.T) {
	orders := ordersTable(
		[]string{"o1", "c1", "2018-01-05", "", ""},
		[]string{"o2", "c2", "2018-03-05", "", ""},
	)
	got, err := OrdersOverTime(orders)
	if err != nil {
		t.Fatalf("OrdersOverTime: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets with no synthetic february, got %+v", got)
	}
}

func TestAOVOverTime(t *testing.T) {
	orders := ordersTable(
		[]string{"o1", "c1", "2018-01-03 10:00:00", "", ""},
		[]string{"o2", "c2", "2018-01-20 10:00:00", "", ""},
		[]string{"o3", "c3", "2018-02-01 10:00:00", "", ""},
		[]string{"o4", "c4", "2018-02-05 10:00:00", "", ""}, // no items: inner join drops it
	)
	items := newTable("order_items", []string{"order_id", "price", "freight_value"},
		[]string{"o1", "100.00", "50.00"}, // freight must not count
		[]string{"o1", "20.00", "5.00"},
		[]string{"o2", "60.00", "9.99"},
		[]string{"o3", "33.335", "1.00"},
	)
	got, err := AOVOverTime(orders, items)
	if err != nil {
		t.Fatalf("AOVOverTime: %v", err)
	}
	wantLabels := []string{"2018-01", "2018-02"}
	if !reflect.DeepEqual(got.Labels, wantLabels) {
		t.Fatalf("labels: got %v, want %v", got.Labels, wantLabels)
	}
	// January: (100 + 20 + 60) / 2 orders = 90.00.
	wantValues := []float64{90.0, 33.34}
	if !reflect.DeepEqual(got.Values, wantValues) {
		t.Fatalf("values: got %v, want %v", got.Values, wantValues)
	}
}

func TestAOVOverTimeEmpty(t *testing.T) {
	got, err := AOVOverTime(ordersTable(), newTable("order_items", []string{"order_id", "price"}))
	if err != nil {
		t.Fatalf("AOVOverTime: %v", err)
	}
	if len(got.Labels) != 0 || len(got.Values) != 0 {
		t.Fatalf("expected empty series, got %+v", got)
	}
}
