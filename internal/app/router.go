package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"paygate/internal/handler"
	"paygate/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	CheckoutHandler *handler.CheckoutHandler
	VerifyHandler   *handler.VerifyHandler
	WebhookHandler  *handler.WebhookHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Wrong-method requests to a registered path are rejected as bad
	// requests rather than gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Checkout session issuance; host checkout pages may retry with an
		// Idempotency-Key header.
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
		{
			checkout.POST("/session", deps.CheckoutHandler.CreateSession)
		}

		// Paystack notification endpoints. Both strictly POST; other
		// methods fall through to the NoMethod handler.
		paystack := v1.Group("/paystack")
		{
			paystack.POST("/verify", deps.VerifyHandler.Verify)
			paystack.POST("/webhook", deps.WebhookHandler.Handle)
		}
	}

	return router
}
