package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/labassist/labassist/internal/config"
	"github.com/labassist/labassist/internal/domain/cases"
	"github.com/labassist/labassist/internal/domain/catalog"
	"github.com/labassist/labassist/internal/domain/rules"
	"github.com/labassist/labassist/internal/intake"
	"github.com/labassist/labassist/internal/platform/middleware"
	"github.com/labassist/labassist/internal/platform/seed"
	"github.com/labassist/labassist/internal/recommend"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "labassist-server",
		Short: "Triage lab recommendation API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the demo dataset as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(seed.DemoDataset())
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Stores and services, all memory-resident
	catalogSvc := catalog.NewService(catalog.NewMemoryLabTestRepo(), catalog.NewMemoryDiagnosisRepo())
	ruleSvc := rules.NewService(rules.NewMemoryRuleRepo())
	caseSvc := cases.NewService(cases.NewMemoryCaseRepo(), ruleSvc, catalogSvc, logger)
	intakeSvc := intake.NewService(intake.NewMemoryDraftStore(), ruleSvc, caseSvc)

	ctx := context.Background()
	if cfg.SeedDemoData {
		if err := seed.Apply(ctx, catalogSvc, ruleSvc, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.MaxBodySize))
	e.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// API group with rate limiting
	apiV1 := e.Group("/api/v1")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Dashboard tiles
	apiV1.GET("/stats", statsHandler(caseSvc, catalogSvc, ruleSvc))

	// Domain routes
	catalog.NewHandler(catalogSvc).RegisterRoutes(apiV1)
	rules.NewHandler(ruleSvc).RegisterRoutes(apiV1)
	cases.NewHandler(caseSvc).RegisterRoutes(apiV1)
	recommend.NewHandler(ruleSvc, catalogSvc).RegisterRoutes(apiV1)
	intake.NewHandler(intakeSvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func statsHandler(caseSvc *cases.Service, catalogSvc *catalog.Service, ruleSvc *rules.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		caseCount, err := caseSvc.CountCases(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		tests, err := catalogSvc.AllLabTests(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		ruleSet, err := ruleSvc.AllRules(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, map[string]int{
			"cases":     caseCount,
			"lab_tests": len(tests),
			"rules":     len(ruleSet),
		})
	}
}
