package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finsight/internal/analysis"
	"finsight/internal/config"
	"finsight/internal/handlers"
	"finsight/internal/middleware"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; environment variables win in deployed environments
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst).Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.APIKeyHeader, middleware.TraceIDHeader},
	}))

	metrics := analysis.NewPrometheusMetrics()
	analysisHandler := handlers.NewAnalysisHandler(
		analysis.NewCategorizer(analysis.DefaultRules(), metrics),
		analysis.NewRecurringDetector(metrics),
		analysis.NewAggregator(metrics),
		analysis.NewBudgetAnalyzer(metrics),
		analysis.NewForecaster(metrics),
		analysis.NewPlanner(metrics),
		analysis.NewIncomeAnalyzer(metrics),
	)
	sourcesHandler := handlers.NewSourcesHandler()
	healthHandler := handlers.NewHealthCheckHandler()

	e.GET("/healthz", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	if cfg.Auth.Enabled {
		api.Use(middleware.RequireAuth(cfg.Auth.JWTSecret, cfg.Auth.APIKeyHashes))
	} else {
		slog.Warn("Authentication is disabled; all API routes are open")
	}

	an := api.Group("/analysis")
	an.POST("/categorize", analysisHandler.Categorize)
	an.POST("/recurring", analysisHandler.DetectRecurring)
	an.POST("/aggregate", analysisHandler.Aggregate)
	an.POST("/search", analysisHandler.Search)
	an.POST("/merchants", analysisHandler.Merchants)
	an.POST("/budget", analysisHandler.AnalyzeBudget)
	an.POST("/forecast", analysisHandler.Forecast)
	an.POST("/health", analysisHandler.AssessHealth)
	an.POST("/debt", analysisHandler.AnalyzeDebt)
	an.POST("/savings-goal", analysisHandler.PlanSavingsGoal)
	an.POST("/income", analysisHandler.AnalyzeIncome)

	norm := api.Group("/normalize")
	norm.POST("/plaid", sourcesHandler.NormalizePlaid)
	norm.POST("/teller", sourcesHandler.NormalizeTeller)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		slog.Info("Starting server",
			"addr", addr,
			"environment", cfg.Server.Environment,
			"auth_enabled", cfg.Auth.Enabled,
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped unexpectedly", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
