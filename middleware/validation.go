package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/response"
)

// BindQuery binds and validates query parameters, writing the error envelope
// and returning false on failure. Validation errors are reported per field.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.Error(c, response.INVALID_PARAMS, formatBindError(err))
		c.Abort()
		return false
	}
	return true
}

func formatBindError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]string, len(ve))
		for i, fe := range ve {
			out[i] = fe.Field() + " " + fe.Tag()
		}
		return strings.Join(out, ", ")
	}
	return err.Error()
}
