package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/api/handlers"
	"github.com/lojinha/storefront/internal/api/middleware"
	"github.com/lojinha/storefront/internal/auth"
	"github.com/lojinha/storefront/internal/cart"
	"github.com/lojinha/storefront/internal/config"
	"github.com/lojinha/storefront/internal/upstream"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, client *upstream.Client, sessions *auth.Sessions, carts *cart.Manager, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Public routes
		api.POST("/register", handlers.HandleRegister(client, logger))
		api.POST("/login", handlers.HandleLogin(cfg, client, sessions, logger))

		// Session routes (require a valid session cookie or bearer token)
		authed := api.Group("")
		authed.Use(middleware.SessionMiddleware(sessions, cfg.Session.CookieName, logger))
		{
			authed.POST("/logout", handlers.HandleLogout(cfg, carts))
			authed.GET("/account", handlers.HandleGetAccount(client, logger))

			authed.GET("/products", handlers.HandleListProducts(client, logger))
			authed.GET("/product/:id", handlers.HandleGetProduct(client, logger))
			authed.GET("/categories", handlers.HandleListCategories(client, logger))
			authed.GET("/file", handlers.HandleFetchFile(client, logger))

			authed.GET("/shoppingCart", handlers.HandleGetCart(carts, logger))
			authed.PATCH("/shoppingCart", handlers.HandleReplaceCart(carts, logger))
			authed.POST("/shoppingCart", handlers.HandleAppendItem(client, carts, logger))
			authed.PUT("/shoppingCart/items/:index", handlers.HandleUpdateQuantity(carts, logger))
			authed.DELETE("/shoppingCart/items/:index", handlers.HandleRemoveItem(carts, logger))
			authed.POST("/shoppingCart/reset", handlers.HandleResetCart(carts, logger))

			authed.POST("/checkout", handlers.HandleCheckout(client, carts, logger))
			authed.GET("/invoices", handlers.HandleListInvoices(client, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests with a per-request id
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method
		requestID := uuid.New().String()
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
