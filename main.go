package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sriram-Harshit/ecommerce-analytics/config"
	"github.com/Sriram-Harshit/ecommerce-analytics/dataset"
	"github.com/Sriram-Harshit/ecommerce-analytics/middleware"
	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/goroutinepool"
	"github.com/Sriram-Harshit/ecommerce-analytics/pkg/monitoring"
	"github.com/Sriram-Harshit/ecommerce-analytics/router"
	"github.com/Sriram-Harshit/ecommerce-analytics/services/analytics_service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Injected at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const serviceName = "ecommerce-analytics"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-version", "--version", "-v":
			fmt.Printf("%s\n", serviceName)
			fmt.Printf("Version: %s\n", Version)
			fmt.Printf("Build Time: %s\n", BuildTime)
			fmt.Printf("Git Commit: %s\n", GitCommit)
			return
		case "-help", "--help", "-h":
			fmt.Printf("%s - tabular analytics and insight engine\n\n", serviceName)
			fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
			fmt.Printf("Options:\n")
			fmt.Printf("  -version, -v     print version information\n")
			fmt.Printf("  -help, -h        print this help\n\n")
			fmt.Printf("Environment Variables:\n")
			fmt.Printf("  SERVER_PORT      HTTP port (default 8801)\n")
			fmt.Printf("  DATA_DIR         dataset CSV directory (default data/default)\n")
			fmt.Printf("  CONFIG_FILE      yaml config path (default config/config.yaml)\n")
			return
		}
	}

	if err := config.InitConfig(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	log.Printf("starting %s (mode: %s, port: %s)...", serviceName, cfg.Server.Mode, cfg.Server.Port)

	// Materialize the dataset once; every request computes from this
	// read-only snapshot.
	data, err := dataset.Load(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("failed to load dataset from %s: %v", cfg.Data.Dir, err)
	}
	for _, name := range data.Names() {
		if t, err := data.Get(name); err == nil {
			monitoring.SetDatasetRows(name, t.NumRows())
			log.Printf("loaded table %s: %d rows, %d columns", name, t.NumRows(), t.NumCols())
		}
	}

	svc := analytics_service.NewDashboardService(data, goroutinepool.GetPool())

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	app := gin.New()

	app.Use(middleware.Recovery())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(cfg.Log))
	app.Use(middleware.Cors())
	app.Use(middleware.RateLimit(1000))
	app.Use(monitoring.PrometheusMiddleware())

	app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	app.GET("/health", func(c *gin.Context) {
		tables := gin.H{}
		for _, name := range data.Names() {
			if t, err := data.Get(name); err == nil {
				tables[name] = t.NumRows()
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"status":     "healthy",
			"timestamp":  time.Now(),
			"goroutines": goroutinepool.GetPool().GetStats(),
			"tables":     tables,
		})
	})

	router.Init(app, svc)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("server forced to shut down: %v", err)
	}

	goroutinepool.Stop()

	log.Printf("server stopped")
}
