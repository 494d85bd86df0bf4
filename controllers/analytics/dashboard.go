package analytics

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sriram-Harshit/ecommerce-analytics/engine"
	"github.com/Sriram-Harshit/ecommerce-analytics/inout"
	"github.com/Sriram-Harshit/ecommerce-analytics/middleware"
	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/response"
)

// Dashboard returns the full analytics view: KPIs, charts, segmentation and
// the retention insight.
func Dashboard(c *gin.Context) {
	rep, err := dashboardService.Dashboard()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, rep)
}

// Quality returns the data-quality diagnostics and risk flags.
func Quality(c *gin.Context) {
	rep, err := dashboardService.Quality()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, rep)
}

// DelayDataset returns the feature-target rows for the delay classifier.
func DelayDataset(c *gin.Context) {
	rows, err := dashboardService.DelayDataset()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, rows)
}

// InsightPreview runs the retention insight on caller-supplied signals, so a
// frontend can preview narratives for hypothetical rates.
func InsightPreview(c *gin.Context) {
	var req inout.InsightPreviewReq
	if !middleware.BindQuery(c, &req) {
		return
	}
	result := engine.BuildRetentionInsight(req.RepeatRate, req.DelayedOrders, req.TotalOrders)
	response.Success(c, result)
}

// ExportKPIs streams the KPI report as a CSV download.
func ExportKPIs(c *gin.Context) {
	rows, err := dashboardService.ExportKPIs()
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="kpi_report.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Metric", "Value"})
	for _, row := range rows {
		_ = w.Write([]string{row.Metric, row.Value})
	}
	w.Flush()
}
