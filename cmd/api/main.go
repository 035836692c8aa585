package main

// @title RepCall API
// @version 1.0
// @description Constituent advocacy backend: look up your representatives by zip code, keep call scripts, and track the calls you make.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/civicline/repcall/config"
	"github.com/civicline/repcall/pkg/api/handlers"
	"github.com/civicline/repcall/pkg/cache"
	"github.com/civicline/repcall/pkg/calllogs"
	"github.com/civicline/repcall/pkg/database"
	"github.com/civicline/repcall/pkg/export"
	"github.com/civicline/repcall/pkg/jobs"
	"github.com/civicline/repcall/pkg/logger"
	"github.com/civicline/repcall/pkg/metrics"
	custommiddleware "github.com/civicline/repcall/pkg/middleware"
	"github.com/civicline/repcall/pkg/representatives"
	"github.com/civicline/repcall/pkg/scripts"
	"github.com/civicline/repcall/pkg/suggestions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/civicline/repcall/docs" // Swagger docs
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.APIEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.APIEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Initialize database
	db, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Redis cache. The lookup path works without it, so a
	// missing Redis only disables caching.
	var redisClient *cache.Client
	if cfg.CacheEnabled {
		redisClient, err = cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, caching disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Printf("✅ Redis cache connected")
		}
	} else {
		log.Printf("ℹ️  Cache disabled (CACHE_ENABLED=false)")
	}

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New()
	log.Printf("✅ Prometheus metrics initialized")

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Initialize rate limiter
	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[%s] %s - Status: %d", c.Request().Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		},
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())

	e.Use(globalRateLimiter.RateLimitMiddleware())

	// Health check endpoints (public)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "RepCall API",
			"version":     "1.0.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status":   "unhealthy",
				"database": "down",
			})
		}

		status := map[string]any{
			"status":   "healthy",
			"database": "up",
		}
		if redisClient != nil {
			if _, err := redisClient.Redis.Ping(ctx).Result(); err != nil {
				status["cache"] = "down"
			} else {
				status["cache"] = "up"
			}
		}

		return c.JSON(http.StatusOK, status)
	})

	// Prometheus metrics endpoint (public)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Swagger documentation (public)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Initialize services
	repService := representatives.NewService(db.DB, redisClient)
	suggestionService := suggestions.NewService(db.DB, redisClient)
	scriptService := scripts.NewService(db.DB)
	callLogService := calllogs.NewService(db.DB)
	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	exportService := export.NewService(db.DB, callLogService, cfg.ExportStoragePath, appLogger)

	// Initialize handlers
	repHandler := handlers.NewRepresentativeHandler(repService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)
	scriptHandler := handlers.NewScriptHandler(scriptService)
	callLogHandler := handlers.NewCallLogHandler(callLogService, exportService)
	phoneHandler := handlers.NewPhoneHandler()
	sessionHandler := handlers.NewSessionHandler(cfg.JWTSecret, cfg.JWTExpirationHours)

	// API v1 routes
	v1 := e.Group("/api/v1")
	v1.Use(custommiddleware.APIVersionMiddleware(custommiddleware.CurrentAPIVersion))
	v1.Use(custommiddleware.SessionMiddleware(cfg.JWTSecret))

	v1.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "pong"})
	})

	// Representatives
	v1.GET("/representatives/:zip_code", repHandler.GetByZip)
	v1.POST("/representatives", repHandler.Create)
	v1.DELETE("/representatives/:id", repHandler.Delete)
	v1.POST("/representatives/:id/phones", repHandler.AddPhone)
	v1.DELETE("/representatives/:id/phones/:phone_id", repHandler.DeletePhone)

	// Suggestions
	v1.GET("/suggestions/:zip_code", suggestionHandler.GetByZip)
	v1.POST("/suggestions/accept", suggestionHandler.Accept)

	// Scripts
	v1.GET("/scripts", scriptHandler.List)
	v1.GET("/scripts/:id", scriptHandler.Get)
	v1.POST("/scripts", scriptHandler.Create)
	v1.PUT("/scripts/:id", scriptHandler.Update)
	v1.DELETE("/scripts/:id", scriptHandler.Delete)

	// Call logs
	v1.POST("/call-logs", callLogHandler.Create)
	v1.GET("/call-logs", callLogHandler.List)
	v1.GET("/call-logs/stats", callLogHandler.Stats)
	v1.POST("/call-logs/exports", callLogHandler.Export)
	v1.GET("/call-logs/exports/:id/download", callLogHandler.Download)

	// Phone utilities
	v1.POST("/phone/validate", phoneHandler.Validate)
	v1.POST("/phone/normalize", phoneHandler.Normalize)

	// Sessions
	v1.POST("/sessions", sessionHandler.Create)

	// Scheduled jobs
	cronManager := jobs.NewCronManager(exportService, redisClient, log.Default())
	if err := cronManager.SetupJobs(); err != nil {
		log.Fatalf("❌ Failed to set up cron jobs: %v", err)
	}
	cronManager.Start()
	defer cronManager.Stop()

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	go func() {
		log.Printf("🚀 Starting server on %s", address)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
