package analytics

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/response"
	"github.com/Sriram-Harshit/ecommerce-analytics/services/analytics_service"
)

var dashboardService *analytics_service.DashboardService

// Init wires the controllers to the dashboard service built at startup.
func Init(s *analytics_service.DashboardService) {
	dashboardService = s
}

// fail maps engine errors onto the envelope: schema violations are the
// caller's data problem, everything else is internal.
func fail(c *gin.Context, err error) {
	var schemaErr *dataset.SchemaError
	if errors.As(err, &schemaErr) {
		response.Error(c, response.INVALID_PARAMS, err.Error())
		return
	}
	response.Error(c, response.INTERNAL_ERROR, err.Error())
}
