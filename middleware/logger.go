package middleware

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sriram-Harshit/ecommerce-analytics/config"
)

// openLogFile creates the log directory and opens a dated log file.
func openLogFile(logDir string) (*os.File, error) {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, err
	}
	logFile := filepath.Join(logDir, time.Now().Format("2006-01-02")+".log")
	return os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

// RequestLogger logs one line per request: method, path, query, client IP,
// status and latency. Output destination follows the log configuration
// (stdout, file or both).
func RequestLogger(cfg config.LogConfig) gin.HandlerFunc {
	var out io.Writer = os.Stdout
	if cfg.Output == "file" || cfg.Output == "both" {
		file, err := openLogFile(cfg.Dir)
		if err != nil {
			log.Printf("request logger falling back to stdout: %v", err)
		} else if cfg.Output == "both" {
			out = io.MultiWriter(os.Stdout, file)
		} else {
			out = file
		}
	}
	logger := log.New(out, "", log.LstdFlags)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Printf("%s %s?%s | %d | %s | %v",
			c.Request.Method,
			c.Request.URL.Path,
			c.Request.URL.RawQuery,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
		)
	}
}
