package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Sriram-Harshit/ecommerce-analytics/controllers/analytics"
	"github.com/Sriram-Harshit/ecommerce-analytics/services/analytics_service"
)

// Init registers the analytics API routes.
func Init(app *gin.Engine, svc *analytics_service.DashboardService) {
	analytics.Init(svc)

	api := app.Group("/api")
	{
		api.GET("/dashboard", analytics.Dashboard)
		api.GET("/dashboard/quality", analytics.Quality)
		api.GET("/dashboard/export", analytics.ExportKPIs)
		api.GET("/dashboard/delay-dataset", analytics.DelayDataset)
		api.GET("/insight/preview", analytics.InsightPreview)
	}
}
