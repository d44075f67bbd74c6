package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"storefront/internal/caching"
	"storefront/internal/handlers"
	"storefront/internal/jobs"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/database"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if db, err := strconv.Atoi(s); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "catalog-media"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	mediaSvc, err := services.NewMinioMediaService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}

	// Cache tiers
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	localCache := caching.NewLocalCache()

	// Repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	groupRepo := repositories.NewProductGroupRepo(pool)
	skuRepo := repositories.NewSkuRepo(pool)
	attributeRepo := repositories.NewAttributeRepo(pool)
	browseRepo := repositories.NewBrowseRepo(pool)

	// Services
	categorySvc := services.NewCategoryService(categoryRepo, localCache)
	browseSvc := services.NewBrowseService(browseRepo, attributeRepo, skuRepo, groupRepo, cacheSvc)
	productSvc := services.NewProductService(groupRepo, skuRepo, attributeRepo, mediaSvc, cacheSvc)
	searchSvc := services.NewSearchService(groupRepo, cacheSvc)

	// Handlers
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc, browseSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	searchHandlers := handlers.NewSearchHandlers(searchSvc)
	cacheHandlers := handlers.NewCacheHandlers(cacheSvc, localCache)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background schedule: keep the category tree warm in the local tier.
	scheduler, err := jobs.NewScheduler(categorySvc)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("scheduler shutdown: %v", err)
		}
	}()

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	v1 := e.Group("/v1")

	// Navigation tree
	v1.GET("/categories", categoryHandlers.GetTopLevel)
	v1.GET("/categories/sections", categoryHandlers.GetSections)
	v1.GET("/categories/:id/children", categoryHandlers.GetChildren)

	// Filtered browse (mid-level and leaf category pages)
	v1.GET("/browse/:slug", categoryHandlers.Browse)

	// Product groups and SKUs
	v1.GET("/groups", productHandlers.ListByCategory)
	v1.GET("/groups/:slug", productHandlers.GetGroup)
	v1.GET("/skus/by-part-number/:part_number", productHandlers.GetSkuByPartNumber)
	v1.GET("/skus/:id/check", productHandlers.CheckSku)
	v1.GET("/skus/:id/price", productHandlers.GetSkuPrice)

	// Search
	v1.GET("/search", searchHandlers.Search)
	v1.GET("/search/dropdown", searchHandlers.Dropdown)

	// Internal: invalidation hook for the catalog admin pipeline.
	e.POST("/internal/cache/invalidate", cacheHandlers.Invalidate)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("storefront catalog server starting on port %d", port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
