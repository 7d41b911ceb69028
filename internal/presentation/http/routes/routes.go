package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sypoint-pos/internal/config"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/sypoint-pos/internal/domain/repository"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/handler"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/middleware"
	"github.com/sangkips/sypoint-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	Register    *handler.RegisterHandler
	Shift       *handler.ShiftHandler
	Transaction *handler.TransactionHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
	Logger          *slog.Logger
}

// NewRateLimiter builds the per-user limiter from the rate limit config.
func NewRateLimiter(cfg config.RateLimitConfig) *middleware.UserRateLimiter {
	duration := cfg.Duration
	if duration <= 0 {
		duration = 1
	}
	return middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.Requests) / float64(duration),
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = NewRateLimiter(deps.Cfg.RateLimit)
	}

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		auth.Use(rateLimiter.Middleware())
		auth.POST("/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireRole(enum.RoleAdmin.String(), enum.RoleCashier.String()))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.GetProfile)

	protected.GET("/catalog/:reference", h.Catalog.Lookup)

	register := protected.Group("/register")
	{
		register.GET("/cart", h.Register.GetCart)
		register.POST("/cart/items", h.Register.AddItem)
		register.DELETE("/cart/items/:index", h.Register.RemoveLine)
		register.POST("/payment", h.Register.Quote)
		register.DELETE("/payment", h.Register.CancelPayment)
		register.POST("/void", h.Register.Void)

		idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})
		register.POST("/checkout", idempotency, h.Register.Checkout)
	}

	protected.GET("/shift/summary", h.Shift.GetSummary)
	protected.GET("/transactions/:id", h.Transaction.Get)
}
