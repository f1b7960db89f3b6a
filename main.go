package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Ilhamsafeek/panvel-final-sub001/config"
	"github.com/Ilhamsafeek/panvel-final-sub001/handler"
	"github.com/Ilhamsafeek/panvel-final-sub001/middleware"
	"github.com/Ilhamsafeek/panvel-final-sub001/pkg/logger"
	"github.com/Ilhamsafeek/panvel-final-sub001/service"
	"github.com/Ilhamsafeek/panvel-final-sub001/view"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize the upstream API client and the draft store
	apiClient, err := service.NewClient(&cfg.API)
	if err != nil {
		slog.Error("failed to initialize API client", "error", err)
		os.Exit(1)
	}
	drafts := service.NewDraftStore(cfg.UI.MaxDrafts)

	// Parse embedded templates
	templates, err := view.Load()
	if err != nil {
		slog.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	verificationHandler := handler.NewVerificationHandler(apiClient, cfg.UI.HashDisplayLength)
	creationHandler := handler.NewCreationHandler(apiClient, drafts)
	clauseHandler := handler.NewClauseHandler(apiClient,
		time.Duration(cfg.UI.DebounceMillis)*time.Millisecond, cfg.UI.PageSize)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware
	router.SetHTMLTemplate(templates)

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(cacheMiddleware())                      // Cache control
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Static assets
	router.Static("/static", "./static")

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Pages
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/contracts/new")
	})
	router.GET("/contracts/new", creationHandler.Page)
	router.GET("/clauses", clauseHandler.Page)
	router.GET("/verify", verificationHandler.Page)

	// HTML fragments; every request carries the resolved API token
	fragments := router.Group("/fragments")
	fragments.Use(middleware.BearerToken(cfg.API.TokenCookie))
	{
		fragments.GET("/verification/indicator", verificationHandler.Indicator)
		fragments.GET("/verification/certificate/:id", verificationHandler.Certificate)

		fragments.GET("/creation/options", creationHandler.Options)
		fragments.POST("/creation/template", creationHandler.FromTemplate)
		fragments.POST("/creation/upload", creationHandler.Upload)
		fragments.POST("/creation/generate", creationHandler.Generate)
		fragments.POST("/creation/save", creationHandler.Save)

		fragments.GET("/projects/options", creationHandler.ProjectOptions)
		fragments.POST("/projects", creationHandler.CreateProject)

		fragments.GET("/clauses", clauseHandler.List)
		fragments.GET("/clauses/counts", clauseHandler.Counts)
		fragments.GET("/clauses/new", clauseHandler.NewForm)
		fragments.GET("/clauses/filters", clauseHandler.Filters)
		fragments.GET("/clauses/:id/form", clauseHandler.EditForm)
		fragments.POST("/clauses", clauseHandler.Create)
		fragments.PUT("/clauses/:id", clauseHandler.Update)
		fragments.DELETE("/clauses/:id", clauseHandler.Delete)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// cacheMiddleware keeps fragments and pages uncacheable and lets static
// assets cache for an hour.
func cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/static") {
			c.Header("Cache-Control", "public, max-age=3600, must-revalidate")
			c.Next()
			return
		}

		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
