package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"bistro/internal/caching"
	"bistro/internal/config"
	"bistro/internal/events"
	"bistro/internal/handlers"
	"bistro/internal/jobs"
	"bistro/internal/middleware"
	"bistro/internal/models"
	"bistro/internal/repositories"
	"bistro/internal/services"
	"bistro/pkg/database"
)

const version = "1.0.0"

const (
	accessTokenTTLSeconds  = 15 * 60
	refreshTokenTTLSeconds = 7 * 24 * 60 * 60
)

func main() {
	ctx := context.Background()

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Policy config (TOML); infrastructure endpoints come from the environment
	appCfg, err := config.Load(os.Getenv("APP_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
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
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "bistro-media"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to ensure storage bucket: %v", err)
	}

	// Order event publisher; without a broker URL events are dropped
	var publisher events.Publisher
	if amqpURL := os.Getenv("RABBITMQ_URL"); amqpURL != "" {
		publisher, err = events.NewAMQPPublisher(amqpURL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
	} else {
		publisher = events.NoopPublisher{}
		log.Printf("RABBITMQ_URL not set, order events disabled")
	}
	defer publisher.Close()

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	groupRepo := repositories.NewGroupRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	menuItemRepo := repositories.NewMenuItemRepo(pool)
	cartRepo := repositories.NewCartRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(cacheSvc, jwtSecret, accessTokenTTLSeconds, refreshTokenTTLSeconds)
	rolesSvc := services.NewRolesService(userRepo, groupRepo)
	catalogSvc := services.NewCatalogService(categoryRepo, menuItemRepo, storageSvc, cacheSvc)
	cartSvc := services.NewCartService(cartRepo, menuItemRepo)
	orderSvc := services.NewOrderService(orderRepo, orderItemRepo, cartRepo, userRepo,
		rolesSvc, publisher, appCfg.Checkout.AllowEmptyCart)
	receiptSvc := services.NewReceiptService(orderRepo, orderItemRepo)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	groupHandlers := handlers.NewGroupHandlers(rolesSvc)
	categoryHandlers := handlers.NewCategoryHandlers(catalogSvc)
	menuItemHandlers := handlers.NewMenuItemHandlers(catalogSvc)
	cartHandlers := handlers.NewCartHandlers(cartSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc, receiptSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Access-control middleware
	authz := middleware.NewAuthorizer(rolesSvc)
	throttle := middleware.NewThrottle(cacheSvc,
		appCfg.Throttle.UserPerMinute, appCfg.Throttle.AnonPerMinute, time.Minute)

	// Abandoned-cart purge job
	scheduler, err := jobs.NewScheduler(cartRepo,
		time.Duration(appCfg.Cart.TTLHours)*time.Hour,
		time.Duration(appCfg.Cart.PurgeIntervalMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth, no throttle: liveness probes)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Authentication routes (no JWT required, anonymous rate limit)
	auth := e.Group("/auth")
	auth.Use(throttle.Limit())
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)

	// Protected routes. The throttle runs after the JWT middleware so it
	// counts authenticated callers per user, not per client IP.
	api := e.Group("/api")
	api.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret, userRepo)))
	api.Use(throttle.Limit())

	api.GET("/me", authHandlers.Me)

	// Group management (admin only)
	api.GET("/groups/manager/users", groupHandlers.ListManagers, authz.RequireAdmin())
	api.POST("/groups/manager/users", groupHandlers.AddMember, authz.RequireAdmin())
	api.DELETE("/groups/manager/users", groupHandlers.RemoveMember, authz.RequireAdmin())

	// Catalog
	api.GET("/categories", categoryHandlers.ListCategories)
	api.POST("/categories", categoryHandlers.CreateCategory, authz.RequireAdmin())

	api.GET("/menu-items", menuItemHandlers.ListMenuItems)
	api.POST("/menu-items", menuItemHandlers.CreateMenuItem, authz.RequireAdmin())
	api.GET("/menu-items/:id", menuItemHandlers.GetMenuItem)
	api.PATCH("/menu-items/:id", menuItemHandlers.UpdateFeatured, authz.RequireAdmin())
	api.DELETE("/menu-items/:id", menuItemHandlers.DeleteMenuItem, authz.RequireAdmin())
	api.POST("/menu-items/:id/image", menuItemHandlers.UploadImage, authz.RequireAdmin())
	api.GET("/menu-items/:id/image", menuItemHandlers.GetImageURL)

	// Cart (self-scoped)
	api.GET("/cart/menu-items", cartHandlers.ListCart)
	api.POST("/cart/menu-items", cartHandlers.AddToCart)
	api.DELETE("/cart/menu-items", cartHandlers.ClearCart)

	// Orders
	api.GET("/cart/orders", orderHandlers.ListOrderLines)
	api.POST("/cart/orders", orderHandlers.PlaceOrder)
	api.GET("/orders", orderHandlers.ListAssignedOrders)
	api.PATCH("/orders/:id", orderHandlers.UpdateOrder, authz.RequireRole(models.GroupDeliveryCrew, models.GroupManager))
	api.DELETE("/orders/:id", orderHandlers.DeleteOrder)
	api.GET("/orders/:id/receipt", orderHandlers.OrderReceipt)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("bistro server v%s starting on port %s", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", port)))
}
