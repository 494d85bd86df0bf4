package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/response"
)

func rateLimitedRouter(maxRequests int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	app := gin.New()
	app.Use(RateLimit(maxRequests))
	app.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return app
}

func TestRateLimitConcurrentRequests(t *testing.T) {
	app := rateLimitedRouter(1000)

	var wg sync.WaitGroup
	codes := make(chan int, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			w := httptest.NewRecorder()
			app.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		if code != http.StatusOK {
			t.Fatalf("concurrent request rejected with %d", code)
		}
	}
}

func TestRateLimitEnforcesCap(t *testing.T) {
	app := rateLimitedRouter(3)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "pong" {
			t.Fatalf("request %d under the cap failed: %d %q", i, w.Code, w.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Code != response.TOO_MANY_REQUESTS {
		t.Fatalf("code: got %d, want %d", envelope.Code, response.TOO_MANY_REQUESTS)
	}
}
