package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into the unified error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err := fmt.Sprintf("panic recovered: %v", recovered)
		stack := string(debug.Stack())

		log.Printf("[PANIC RECOVERY] %s\n%s", err, stack)

		if gin.Mode() == gin.DebugMode {
			response.ErrorWithData(c, response.INTERNAL_ERROR, gin.H{
				"panic": recovered,
				"stack": stack,
			}, "internal server error")
		} else {
			response.Error(c, response.INTERNAL_ERROR, "internal server error")
		}
	})
}

// RateLimit is a simple per-client request cap. In-memory only; a dashboard
// instance serves a small audience and needs no distributed limiter. The
// counter map is shared by every request goroutine and must stay behind the
// mutex.
func RateLimit(maxRequests int) gin.HandlerFunc {
	var mu sync.Mutex
	requestCounts := make(map[string]int)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		mu.Lock()
		if requestCounts[clientIP] >= maxRequests {
			mu.Unlock()
			response.Abort(c, response.TOO_MANY_REQUESTS, "too many requests, slow down")
			return
		}
		requestCounts[clientIP]++
		mu.Unlock()

		c.Next()
	}
}

// RequestID tags every request with a unique id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := generateRequestID()
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
