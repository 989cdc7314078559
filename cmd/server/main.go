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
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/config"
	"github.com/sajian-platform/service-dashboard/internal/dataset"
	"github.com/sajian-platform/service-dashboard/internal/events"
	"github.com/sajian-platform/service-dashboard/internal/handlers"
	"github.com/sajian-platform/service-dashboard/internal/i18n"
	"github.com/sajian-platform/service-dashboard/internal/logger"
	"github.com/sajian-platform/service-dashboard/internal/middleware"
	"github.com/sajian-platform/service-dashboard/internal/routes"
	"github.com/sajian-platform/service-dashboard/internal/services"
)

func main() {
	// Load .env file in development
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	zlog, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Pin the reference instant once. Every date-range computation in the
	// process derives from this value, never from the wall clock.
	reference, err := cfg.ResolveReference(time.Now())
	if err != nil {
		zlog.Fatal("Failed to resolve reference instant", zap.Error(err))
	}
	zlog.Info("Reference instant pinned", zap.Time("reference", reference))

	// Build and validate the mock dataset
	store, err := dataset.NewStore(dataset.Seed(reference), cfg.MockLatency(), zlog)
	if err != nil {
		zlog.Fatal("Failed to load dataset", zap.Error(err))
	}

	// Connect to Redis (optional - cache disabled when unavailable)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			zlog.Warn("Failed to connect to Redis, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			zlog.Info("Connected to Redis", zap.String("host", cfg.Redis.Host))
		}
		cancel()
	}

	cacheService := services.NewDashboardCacheService(redisClient, cfg.CacheTTL(), zlog)

	// Translator for label text
	translator := i18n.New(cfg.Locale.Default)
	zlog.Info("Translator initialized", zap.String("locale", translator.Locale()))

	// Initialize services
	settingsService := services.NewSettingsService(cacheService, zlog)
	dashboardService := services.NewDashboardService(store, cacheService, settingsService, reference, zlog)
	merchantCatalog := services.NewMerchantCatalog(store, zlog)
	chatService := services.NewChatService(store, translator, reference, zlog)

	merchants, err := store.Merchants(context.Background())
	if err != nil {
		zlog.Fatal("Failed to read merchant catalog", zap.Error(err))
	}
	merchantIDs := make([]string, len(merchants))
	for i, m := range merchants {
		merchantIDs[i] = m.ID
	}
	notificationService := services.NewNotificationService(merchantIDs, reference, zlog)

	// Connect to NATS (optional - only if configured)
	var natsConn *nats.Conn
	var eventSubscriber *events.Subscriber

	if cfg.NATS.URL != "" {
		natsConn, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			zlog.Warn("Failed to connect to NATS, event notifications disabled", zap.Error(err))
		} else {
			zlog.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))
			eventSubscriber = events.NewSubscriber(natsConn, notificationService, zlog)
			if err := eventSubscriber.Start(); err != nil {
				zlog.Warn("Failed to start event subscriber", zap.Error(err))
			}
		}
	}

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, zlog)
	chatHandler := handlers.NewChatHandler(chatService, zlog)
	merchantHandler := handlers.NewMerchantHandler(merchantCatalog, zlog)
	notificationHandler := handlers.NewNotificationHandler(notificationService, zlog)
	settingsHandler := handlers.NewSettingsHandler(settingsService, zlog)

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(zlog))
	router.Use(middleware.RequestLogger(zlog))
	router.Use(middleware.CORSWithOrigins(cfg.CORS.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "dashboard",
			"time":    time.Now().UTC(),
		})
	})

	// Setup routes using the routes package
	routes.SetupRoutes(router, &routes.RouteConfig{
		DashboardHandler:    dashboardHandler,
		ChatHandler:         chatHandler,
		MerchantHandler:     merchantHandler,
		NotificationHandler: notificationHandler,
		SettingsHandler:     settingsHandler,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("Dashboard service starting on port " + cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	if eventSubscriber != nil {
		eventSubscriber.Stop()
	}
	if natsConn != nil {
		natsConn.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}
