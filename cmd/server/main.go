package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/cache"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/catalog"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/config"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/database"
	apperrors "github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/errors"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/frontend"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/middleware"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/monitoring"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/scoring"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/security"
	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/types"
)

// app bundles the services the router needs.
type app struct {
	cfg         config.Config
	catalog     *catalog.Service
	db          *database.DB
	appCache    *cache.Cache
	metrics     *monitoring.Metrics
	logger      *monitoring.Logger
	compression *middleware.CompressionMiddleware
}

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer apperrors.SafeClose(db, "database")

	repo := database.NewRepository(db)
	catalogService := catalog.NewService(repo)

	if cfg.SeedCatalog {
		if err := catalogService.SeedIfEmpty(); err != nil {
			slog.Error("Failed to seed catalog", "error", err)
			os.Exit(1)
		}
	}

	a := &app{
		cfg:         cfg,
		catalog:     catalogService,
		db:          db,
		appCache:    cache.NewCache(cfg.CacheTTL),
		metrics:     monitoring.NewMetrics(),
		logger:      monitoring.NewLogger(),
		compression: middleware.NewCompressionMiddleware(middleware.DefaultCompressionConfig()),
	}

	r := setupRouter(a)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// setupRouter builds the full middleware chain and route table.
func setupRouter(a *app) *gin.Engine {
	r := gin.New()

	r.Use(a.compression.Handler())
	r.Use(monitoring.MonitoringMiddleware(a.metrics, a.logger))
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())

	securityConfig := security.DefaultSecurityConfig()
	securityConfig.AllowedOrigins = a.cfg.AllowedOrigins
	securityMiddleware := security.NewSecurityMiddleware(securityConfig)

	r.Use(securityMiddleware.SecurityHeaders)
	r.Use(securityMiddleware.RequestTimeout)
	r.Use(securityMiddleware.ValidateContentType)
	r.Use(securityMiddleware.RateLimitByIP)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.Use(a.appCache.Middleware(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		categories, err := a.catalog.Categories()
		status := "ok"
		httpStatus := http.StatusOK
		if err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"timestamp":  time.Now().Format(time.RFC3339),
			"version":    "1.0.0",
			"categories": len(categories),
		})
	})

	api := r.Group("/api")

	api.POST("/score", a.handleScore)
	api.GET("/products", a.handleListProducts)
	api.GET("/products/:id", a.handleGetProduct)
	api.GET("/products/:id/breakdown", a.handleProductBreakdown)
	api.GET("/categories", a.handleListCategories)

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.metrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.appCache.Stats())
	})

	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": a.db.GetPoolStats(),
		})
	})

	r.GET("/pools/compression", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "compression",
			"stats": a.compression.GetStats(),
		})
	})

	// SPA fallback for everything the API does not claim
	if distFS, err := frontend.GetDistFS(); err == nil {
		if indexTemplate, err := frontend.LoadIndexTemplate(distFS); err == nil {
			spaHandler := frontend.NewSPAHandler(distFS, indexTemplate)
			r.NoRoute(security.CSPMiddleware(), spaHandler)
		} else {
			slog.Warn("Frontend template unavailable, serving API only", "error", err)
		}
	} else {
		slog.Warn("Frontend assets unavailable, serving API only", "error", err)
	}

	return r
}

// handleScore computes a score from caller-supplied metrics.
func (a *app) handleScore(c *gin.Context) {
	start := time.Now()

	var req types.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	metrics := req.Metrics()
	if problems := scoring.ValidateMetrics(metrics, req.CertificationBonus); len(problems) > 0 {
		appErr := apperrors.NewValidationErrorWithMap(problems)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	result := scoring.ComputeScore(metrics, req.CertificationBonus)
	view := scoring.BuildBreakdown(metrics, req.CertificationBonus)

	a.metrics.IncrementScoresComputed()
	a.logger.ScoringLogger("api", result.FinalScore, result.EnvironmentalScore, time.Since(start), false)

	c.JSON(http.StatusOK, types.ScoreResponse{
		ScoreResult: result,
		Breakdown:   view,
	})
}

// handleListProducts serves the paginated catalog browse view.
func (a *app) handleListProducts(c *gin.Context) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > 100 {
			appErr := apperrors.NewValidationError("limit must be an integer in [1,100]")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		limit = l
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		o, err := strconv.Atoi(offsetStr)
		if err != nil || o < 0 {
			appErr := apperrors.NewValidationError("offset must be a non-negative integer")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		offset = o
	}

	response, err := a.catalog.List(limit, offset, c.Query("category"))
	if err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	a.metrics.IncrementProductsServed()
	c.JSON(http.StatusOK, response)
}

// handleGetProduct serves one product summary.
func (a *app) handleGetProduct(c *gin.Context) {
	id := c.Param("id")

	summary, err := a.catalog.Get(id)
	if errors.Is(err, catalog.ErrNotFound) {
		appErr := apperrors.NewNotFoundError("product", id)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}
	if err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	a.metrics.IncrementProductsServed()
	c.JSON(http.StatusOK, summary)
}

// handleProductBreakdown serves a product's expandable breakdown view.
func (a *app) handleProductBreakdown(c *gin.Context) {
	id := c.Param("id")

	detail, err := a.catalog.Breakdown(id)
	if errors.Is(err, catalog.ErrNotFound) {
		appErr := apperrors.NewNotFoundError("product", id)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}
	if err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	a.metrics.IncrementProductsServed()
	c.JSON(http.StatusOK, detail)
}

// handleListCategories serves the distinct category list.
func (a *app) handleListCategories(c *gin.Context) {
	categories, err := a.catalog.Categories()
	if err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	if categories == nil {
		categories = []string{}
	}

	c.JSON(http.StatusOK, categories)
}
