// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/handlers"
	"github.com/javajoker/storefront-backend/internal/middleware"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/store"
)

const Version = "1.0.0"

func Initialize(cfg *config.Config, st store.Store, bus *events.Bus) (*gin.Engine, error) {
	listOrder, err := store.ParseSortOrder(cfg.Cache.ListOrder)
	if err != nil {
		return nil, err
	}

	// Initialize services
	productCache := cache.NewProductCache(cfg.Cache.ProductTTL)
	catalogService := services.NewCatalogService(st, productCache, bus, listOrder)
	orderService := services.NewOrderService(st, bus, cfg.Orders.MaxScreenshotBytes)
	trackingService := services.NewTrackingService(st, bus)
	notificationService := services.NewNotificationService(services.LogSMSSender{})

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService, cfg.Orders.MaxScreenshotBytes)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	realtimeHandler := handlers.NewRealtimeHandler(bus, cfg.CORS.AllowedOrigins)
	healthHandler := handlers.NewHealthHandler(st, bus.Count, Version)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", realtimeHandler.ServeWebSocket)

	api := r.Group("/api")
	{
		// Long-lived stream, registered ahead of the rate limiter.
		api.GET("/events", realtimeHandler.ServeSSE)

		limited := api.Group("")
		limited.Use(limiter.Middleware())

		products := limited.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PATCH("/:id", productHandler.PatchProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		orders := limited.Group("/orders")
		{
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:orderId", orderHandler.GetOrder)
			orders.POST("", orderHandler.CreateOrder)
			orders.PUT("/:orderId", orderHandler.UpdateOrder)
			orders.DELETE("/:orderId", orderHandler.DeleteOrder)
		}

		tracking := limited.Group("/tracking")
		{
			tracking.GET("", trackingHandler.GetTrackingRecords)
			tracking.GET("/:qrId", trackingHandler.GetTrackingRecord)
			tracking.POST("", trackingHandler.CreateTrackingRecord)
			tracking.PUT("/:qrId", trackingHandler.UpdateTrackingRecord)
			tracking.DELETE("/:qrId", trackingHandler.DeleteTrackingRecord)
			tracking.POST("/:qrId/verify", trackingHandler.VerifyTrackingRecord)
		}

		limited.POST("/send-order-sms", notificationHandler.SendOrderSMS)
	}

	return r, nil
}
