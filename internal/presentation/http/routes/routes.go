package routes

import (
	"time"

	"github.com/akozlenko/kasa-api/internal/config"
	domainRepo "github.com/akozlenko/kasa-api/internal/domain/repository"
	"github.com/akozlenko/kasa-api/internal/presentation/http/handler"
	"github.com/akozlenko/kasa-api/internal/presentation/http/middleware"
	"github.com/akozlenko/kasa-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Receipt *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	UserRepo   domainRepo.UserRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Public routes (no authentication required)
	router.POST("/users/", h.Auth.Register)
	router.POST("/token", h.Auth.Token)
	router.GET("/receipts/:user_id", h.Receipt.GetText)

	// Protected routes (authentication required)
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.UserRepo))

	// Per-client rate limiter
	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	protected.Use(rateLimiter.Middleware())

	protected.POST("/receipts/", h.Receipt.Create)
	protected.GET("/receipts/", h.Receipt.List)
	protected.POST("/receipts/:user_id/print", h.Receipt.Print)

	return router
}
