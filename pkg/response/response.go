package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Unified error codes.
const (
	SUCCESS           = 200
	ERROR             = 500
	INVALID_PARAMS    = 20001
	NOT_FOUND         = 20003
	TOO_MANY_REQUESTS = 20005
	INTERNAL_ERROR    = 20006
)

var codeMsg = map[int]string{
	SUCCESS:           "OK",
	ERROR:             "internal server error",
	INVALID_PARAMS:    "invalid request parameters",
	NOT_FOUND:         "resource not found",
	TOO_MANY_REQUESTS: "too many requests",
	INTERNAL_ERROR:    "internal service error",
}

// Response is the unified JSON envelope.
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	OriginUrl string      `json:"originUrl"`
}

// GetMsg returns the default message for an error code.
func GetMsg(code int) string {
	msg, exist := codeMsg[code]
	if exist {
		return msg
	}
	return codeMsg[ERROR]
}

// Success writes a success envelope.
func Success(c *gin.Context, data interface{}) {
	resp := Response{
		Code:      SUCCESS,
		Message:   GetMsg(SUCCESS),
		Data:      data,
		OriginUrl: c.Request.URL.Path,
	}
	c.JSON(http.StatusOK, resp)
}

// Error writes an error envelope, optionally overriding the default message.
func Error(c *gin.Context, code int, message ...string) {
	msg := GetMsg(code)
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}

	resp := Response{
		Code:      code,
		Message:   msg,
		Error:     "error",
		OriginUrl: c.Request.URL.Path,
	}
	c.JSON(http.StatusOK, resp)
}

// ErrorWithData writes an error envelope carrying diagnostic data.
func ErrorWithData(c *gin.Context, code int, data interface{}, message ...string) {
	msg := GetMsg(code)
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}

	resp := Response{
		Code:      code,
		Message:   msg,
		Data:      data,
		Error:     "error",
		OriginUrl: c.Request.URL.Path,
	}
	c.JSON(http.StatusOK, resp)
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, code int, message ...string) {
	Error(c, code, message...)
	c.Abort()
}
