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

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/crzyc98/mega-backdoor-acp-sub002/config"
	_ "github.com/crzyc98/mega-backdoor-acp-sub002/docs"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/cache"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/database"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/handlers"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/middleware"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/repository"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/services"
)

// @title Mega-Backdoor Roth ACP Risk Tester API
// @version 1.0
// @description Scenario-grid ACP nondiscrimination testing for after-tax 401(k) strategies
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize caches
	memCache := cache.NewMemoryCache(10 * time.Minute)

	// Initialize repositories
	censusRepo := repository.NewCensusRepository(db.Pool)
	runRepo := repository.NewRunRepository(db.Pool)

	// Initialize services
	eligibilitySvc := services.NewEligibilityService()
	censusSvc := services.NewCensusService(eligibilitySvc)
	acpSvc := services.NewACPService(cfg.RiskThreshold)
	gridSvc := services.NewGridService(acpSvc, cfg.AnnualAdditionsLimit)
	impactSvc := services.NewImpactService(acpSvc, cfg.AnnualAdditionsLimit)
	exportSvc := services.NewExportService()

	// Initialize handlers
	censusHandler := handlers.NewCensusHandler(censusSvc, censusRepo, memCache, cfg.DefaultPlanYear)
	runHandler := handlers.NewRunHandler(gridSvc, censusSvc, exportSvc, censusRepo, runRepo, memCache, cfg)
	impactHandler := handlers.NewImpactHandler(impactSvc, eligibilitySvc, censusRepo, runRepo, memCache)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.ExtractWorkspace())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Census and run routes, workspace-scoped
	scoped := router.Group("/", middleware.RequireWorkspace())
	scoped.POST("/censuses", censusHandler.Upload)
	scoped.GET("/censuses/:id", censusHandler.Get)
	scoped.POST("/censuses/:id/runs", runHandler.Create)
	scoped.GET("/censuses/:id/runs", runHandler.ListByCensus)
	scoped.GET("/runs/:id", runHandler.Get)
	scoped.GET("/runs/:id/export.csv", runHandler.ExportCSV)
	scoped.GET("/runs/:id/impact", impactHandler.Get)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
