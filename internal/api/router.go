package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bizdesk/bizdesk-api/internal/api/handler"
	"github.com/bizdesk/bizdesk-api/internal/api/middleware"
	"github.com/bizdesk/bizdesk-api/internal/core/domain"
	"github.com/bizdesk/bizdesk-api/internal/core/service"
	mongodb "github.com/bizdesk/bizdesk-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bizdesk/bizdesk-api/internal/infrastructure/db/redis"
	"github.com/bizdesk/bizdesk-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	profileCache := redisdb.NewProfileCache(rdb, log)
	authService := service.NewAuthService(userRepo, profileCache, cfg.JWTSecret, cfg.TokenTTL, log)
	authHandler := handler.NewAuthHandler(authService)
	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, authRequired)
	auth.POST("/logout", authHandler.Logout, authRequired)

	// --- Resource routes (one schema each, same protocol) ---
	projects := resourceHandler(db, domain.ProjectSchema, log)
	budgets := resourceHandler(db, domain.BudgetSchema, log)
	leads := resourceHandler(db, domain.LeadSchema, log)
	payments := resourceHandler(db, domain.PaymentSchema, log)

	for _, r := range []struct {
		schema  domain.Schema
		handler *handler.ResourceHandler
	}{
		{domain.ProjectSchema, projects},
		{domain.BudgetSchema, budgets},
		{domain.LeadSchema, leads},
		{domain.PaymentSchema, payments},
	} {
		g := e.Group("/api/"+r.schema.Plural, authRequired)
		g.POST("", r.handler.Create)
		g.GET("", r.handler.List)
		g.PUT("/:id", r.handler.Update)
		g.DELETE("/:id", r.handler.Delete)
	}

	e.GET("/api/projects/:id", projects.Get, authRequired)
	// :id here carries the project id, not a budget id.
	e.GET("/api/budgets/:id/project", budgets.ListBy("id", "projectId"), authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

func resourceHandler(db *mongo.Database, schema domain.Schema, log zerolog.Logger) *handler.ResourceHandler {
	repo := mongodb.NewResourceRepository(db, schema.Plural)
	svc := service.NewResourceService(schema, repo, log)
	return handler.NewResourceHandler(svc, schema)
}
