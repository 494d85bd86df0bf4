package analytics_service

import (
	"fmt"
	"sync"
	"time"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
	"github.com/Sriram-Harshit/ecommerce-analytics/engine"
	"github.com/Sriram-Harshit/ecommerce-analytics/inout"
	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/goroutinepool"
	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/monitoring"
)

// DashboardService assembles the analytics views from an explicit dataset
// collection. No ambient dataset state: the collection is injected once and
// every computation reads from it.
type DashboardService struct {
	data *dataset.Collection
	pool *goroutinepool.Pool
}

// NewDashboardService wires the service to its dataset and worker pool.
func NewDashboardService(data *dataset.Collection, pool *goroutinepool.Pool) *DashboardService {
	return &DashboardService{data: data, pool: pool}
}

// tables resolves every table the dashboard needs up front, so a missing
// table fails fast before any computation runs.
func (s *DashboardService) tables() (orders, customers, items, products, translations, reviews, payments *dataset.Table, err error) {
	if orders, err = s.data.Get(dataset.TableOrders); err != nil {
		return
	}
	if customers, err = s.data.Get(dataset.TableCustomers); err != nil {
		return
	}
	if items, err = s.data.Get(dataset.TableOrderItems); err != nil {
		return
	}
	if products, err = s.data.Get(dataset.TableProducts); err != nil {
		return
	}
	if translations, err = s.data.Get(dataset.TableCategoryTranslation); err != nil {
		return
	}
	if reviews, err = s.data.Get(dataset.TableReviews); err != nil {
		return
	}
	payments, err = s.data.Get(dataset.TablePayments)
	return
}

// Dashboard computes all KPIs, charts, tier-2 analytics and the retention
// insight. Engine functions are independent of one another, so each runs as
// its own pool task; only the insight waits, because it consumes the repeat
// rate and order counts computed before it.
func (s *DashboardService) Dashboard() (*inout.DashboardRep, error) {
	orders, customers, items, products, translations, reviews, payments, err := s.tables()
	if err != nil {
		return nil, err
	}

	rep := &inout.DashboardRep{}
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	run := func(name string, fn func() error) {
		wg.Add(1)
		instrumented := func() error {
			start := time.Now()
			err := fn()
			monitoring.ObserveCompute(name, start, err)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", name, err)
				}
				mu.Unlock()
			}
			return err
		}
		if err := s.pool.SubmitWithCallback(instrumented, func(error) { wg.Done() }); err != nil {
			// Pool saturated: compute inline instead of dropping the metric.
			instrumented()
			wg.Done()
		}
	}

	run("total_orders", func() error {
		v, err := engine.TotalOrders(orders)
		rep.OrdersCount = v
		return err
	})
	run("total_revenue", func() error {
		v, err := engine.TotalRevenue(items)
		rep.TotalRevenue = v
		return err
	})
	run("delayed_orders", func() error {
		v, err := engine.DelayedOrders(orders)
		rep.DelayedOrders = v
		return err
	})
	run("average_review_score", func() error {
		v, ok, err := engine.AverageReviewScore(reviews)
		if ok {
			rep.AvgReview = &v
		}
		return err
	})
	run("repeat_customer_rate", func() error {
		v, err := engine.RepeatCustomerRate(orders, customers)
		rep.RepeatRate = v
		return err
	})
	run("orders_over_time", func() error {
		v, err := engine.OrdersOverTime(orders)
		rep.OrdersOverTime = v
		return err
	})
	run("revenue_by_category", func() error {
		v, err := engine.RevenueByCategory(items, products, translations)
		rep.RevenueByCategory = v
		return err
	})
	run("delivery_delay_distribution", func() error {
		v, err := engine.DeliveryDelayDistribution(orders)
		rep.DelayDistribution = v
		return err
	})
	run("aov_over_time", func() error {
		v, err := engine.AOVOverTime(orders, items)
		rep.AOVOverTime = v
		return err
	})
	run("customer_segmentation", func() error {
		v, err := engine.CustomerSegmentation(orders, items, customers)
		rep.CustomerSegments = v
		return err
	})
	run("review_vs_delay", func() error {
		v, err := engine.ReviewVsDelay(orders, reviews)
		rep.ReviewDelay = v
		return err
	})
	run("payment_method_analysis", func() error {
		v, err := engine.PaymentMethodAnalysis(payments, items)
		rep.PaymentMethods = v
		return err
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	rep.RetentionInsight = engine.BuildRetentionInsight(rep.RepeatRate, rep.DelayedOrders, rep.OrdersCount)
	return rep, nil
}

// Quality builds the per-table quality reports plus the cross-table
// integrity checks and risk flags.
func (s *DashboardService) Quality() (*inout.QualityRep, error) {
	rep := &inout.QualityRep{}
	for _, name := range s.data.Names() {
		t, err := s.data.Get(name)
		if err != nil {
			return nil, err
		}
		rep.Tables = append(rep.Tables, inout.TableQualityRep{
			Table:         name,
			Summary:       engine.DatasetSummary(t),
			MissingValues: engine.MissingValuesReport(t),
			DuplicateRows: engine.DuplicateReport(t),
		})
	}

	orders, err := s.data.Get(dataset.TableOrders)
	if err != nil {
		return nil, err
	}
	items, err := s.data.Get(dataset.TableOrderItems)
	if err != nil {
		return nil, err
	}
	customers, err := s.data.Get(dataset.TableCustomers)
	if err != nil {
		return nil, err
	}
	reviews, err := s.data.Get(dataset.TableReviews)
	if err != nil {
		return nil, err
	}

	if rep.OrdersWithoutItems, err = engine.OrderItemsIntegrityCheck(orders, items); err != nil {
		return nil, err
	}
	if rep.OrdersWithoutCustomer, err = engine.CustomerLinkageCheck(orders, customers); err != nil {
		return nil, err
	}
	if rep.Risks, err = engine.RiskHighlights(orders, reviews); err != nil {
		return nil, err
	}
	return rep, nil
}

// DelayDataset prepares the feature-target table for the external delay
// classifier.
func (s *DashboardService) DelayDataset() ([]engine.DelayObservation, error) {
	orders, err := s.data.Get(dataset.TableOrders)
	if err != nil {
		return nil, err
	}
	items, err := s.data.Get(dataset.TableOrderItems)
	if err != nil {
		return nil, err
	}
	return engine.PrepareDelayDataset(orders, items)
}
