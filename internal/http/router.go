// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, rate limiting, and the session gate.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - One partition between public and protected routes, enforced by a
//     single session gate on the protected group
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/config"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/http/handlers"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/http/middleware"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/repo"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/services"
)

// productRepoShim adapts the repository free functions to the
// services.ProductRepo interface expected by the ProductService. This keeps
// services decoupled from the concrete repo package while reusing the
// existing functions.
type productRepoShim struct{}

// CreateProduct proxies repo.CreateProduct.
func (productRepoShim) CreateProduct(ctx context.Context, db *gorm.DB, userID string, p domain.Product) (*domain.Product, error) {
	return repo.CreateProduct(ctx, db, userID, p)
}

// ListProducts proxies repo.ListProducts.
func (productRepoShim) ListProducts(ctx context.Context, db *gorm.DB, userID string) ([]domain.Product, error) {
	return repo.ListProducts(ctx, db, userID)
}

// GetProduct proxies repo.GetProduct.
func (productRepoShim) GetProduct(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Product, error) {
	return repo.GetProduct(ctx, db, id, userID)
}

// OverwriteProduct proxies repo.OverwriteProduct.
func (productRepoShim) OverwriteProduct(ctx context.Context, db *gorm.DB, id, userID string, p domain.Product) error {
	return repo.OverwriteProduct(ctx, db, id, userID, p)
}

// DeleteProduct proxies repo.DeleteProduct.
func (productRepoShim) DeleteProduct(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteProduct(ctx, db, id, userID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the versioned API under cfg.APIBasePath, split into a public group and a
// session-gated group.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured logs (credential headers masked)
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and security headers
//  9. Response compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB); every payload here is a small form
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture. The session cookie only flows cross-origin with
	// credentials enabled, and credentials require an explicit origin
	// allowlist; without one the API is effectively same-origin only.
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Compress JSON responses; the feed pages benefit the most
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db
	authSvc := services.NewAuthService(db)
	authSvc.SessionTTL = cfg.SessionTTL
	authSvc.BCryptCost = cfg.BCryptCost
	prodSvc := services.NewProductService(db, productRepoShim{})
	notifSvc := &services.NotificationService{DB: db}
	profSvc := &services.ProfileService{DB: db}
	h := handlers.New(authSvc, prodSvc, notifSvc, profSvc)

	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)

	// Public: reachable without a session.
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	// Protected: everything else sits behind the session gate.
	prot := api.Group("", middleware.RequireSession(authSvc))
	{
		// Account
		prot.POST("/auth/logout", h.Logout)
		prot.GET("/auth/me", h.Me)

		// Products
		prot.POST("/products", h.CreateProduct)
		prot.GET("/products", h.ListProducts)
		prot.GET("/products/:id", h.GetProduct)
		prot.PUT("/products/:id", h.UpdateProduct)
		prot.DELETE("/products/:id", h.DeleteProduct)

		// Notifications
		prot.GET("/notifications", h.ListNotifications)
		prot.DELETE("/notifications/:id", h.DeleteNotification)

		// Profile
		prot.GET("/profile/phones", h.ProfilePhones)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the
// cap cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
