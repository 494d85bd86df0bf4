package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Dataset table names used throughout the engine.
const (
	TableOrders              = "orders"
	TableCustomers           = "customers"
	TableOrderItems          = "order_items"
	TableProducts            = "products"
	TableReviews             = "reviews"
	TablePayments            = "payments"
	TableCategoryTranslation = "category_translation"
)

// tableFiles maps table names to the olist CSV export filenames.
var tableFiles = map[string]string{
	TableOrders:              "olist_orders_dataset.csv",
	TableCustomers:           "olist_customers_dataset.csv",
	TableOrderItems:          "olist_order_items_dataset.csv",
	TableProducts:            "olist_products_dataset.csv",
	TableReviews:             "olist_order_reviews_dataset.csv",
	TablePayments:            "olist_order_payments_dataset.csv",
	TableCategoryTranslation: "product_category_name_translation.csv",
}

// Collection holds the materialized tables for one engine invocation. It is
// built once (at startup or per test) and passed in explicitly; there is no
// ambient dataset state.
type Collection struct {
	tables map[string]*Table
}

// NewCollection builds an empty collection.
func NewCollection() *Collection {
	return &Collection{tables: make(map[string]*Table)}
}

// Put registers a table under its name, replacing any previous one.
func (c *Collection) Put(t *Table) {
	c.tables[t.Name()] = t
}

// Get returns a named table or a SchemaError when it is not present.
func (c *Collection) Get(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, &SchemaError{Table: name}
	}
	return t, nil
}

// Names returns the registered table names sorted for determinism.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads the full olist dataset from a directory of CSV exports. The
// header row of each file declares the column set; every file in tableFiles
// must exist. Ragged data rows are tolerated (short rows pad with missing
// cells), malformed values inside cells are left for the engine to coerce.
func Load(dir string) (*Collection, error) {
	c := NewCollection()
	for name, file := range tableFiles {
		t, err := loadCSV(name, filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("dataset: load %s: %w", name, err)
		}
		c.Put(t)
	}
	return c, nil
}

func loadCSV(name, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = false

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, no header row", path)
	}
	return New(name, records[0], records[1:]), nil
}
