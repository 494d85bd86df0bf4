package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeDataset lays out a minimal but complete olist export in dir.
func writeDataset(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"olist_orders_dataset.csv": "order_id,customer_id,order_purchase_timestamp," +
			"order_delivered_customer_date,order_estimated_delivery_date\n" +
			"o1,c1,2018-01-03 10:00:00,2018-01-10 10:00:00,2018-01-08 00:00:00\n" +
			"o2,c2,2018-01-05 10:00:00,,2018-01-12 00:00:00\n",
		"olist_customers_dataset.csv":   "customer_id,customer_unique_id\nc1,u1\nc2,u2\n",
		"olist_order_items_dataset.csv": "order_id,product_id,price,freight_value\no1,p1,100.00,10.00\n",
		"olist_products_dataset.csv":    "product_id,product_category_name\np1,beleza_saude\n",
		"olist_order_reviews_dataset.csv": "review_id,order_id,review_score\n" +
			"r1,o1,4\n",
		"olist_order_payments_dataset.csv":      "order_id,payment_type\no1,credit_card\n",
		"product_category_name_translation.csv": "product_category_name,product_category_name_english\nbeleza_saude,health_beauty\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wantNames := []string{
		TableCategoryTranslation, TableCustomers, TableOrderItems,
		TableOrders, TablePayments, TableProducts, TableReviews,
	}
	if got := c.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("names: got %v, want %v", got, wantNames)
	}

	orders, err := c.Get(TableOrders)
	if err != nil {
		t.Fatalf("Get(orders): %v", err)
	}
	if orders.NumRows() != 2 {
		t.Fatalf("orders rows: got %d, want 2", orders.NumRows())
	}
	if got := orders.Cell(1, orders.Col("order_delivered_customer_date")); got != "" {
		t.Fatalf("expected the undelivered order to carry a missing cell, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)
	if err := os.Remove(filepath.Join(dir, "olist_order_reviews_dataset.csv")); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for a missing export file")
	}
}

func TestLoadRaggedRows(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)
	short := "customer_id,customer_unique_id\nc1\n"
	if err := os.WriteFile(filepath.Join(dir, "olist_customers_dataset.csv"), []byte(short), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	customers, err := c.Get(TableCustomers)
	if err != nil {
		t.Fatalf("Get(customers): %v", err)
	}
	if got := customers.Cell(0, customers.Col("customer_unique_id")); got != "" {
		t.Fatalf("short row should pad with a missing cell, got %q", got)
	}
}

func TestCollectionGetAbsentTable(t *testing.T) {
	c := NewCollection()
	_, err := c.Get(TableOrders)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Table != TableOrders {
		t.Fatalf("table: got %q", schemaErr.Table)
	}
}
