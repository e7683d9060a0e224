package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authHandler "staysboard/internal/api/auth"
	blocksHandler "staysboard/internal/api/blocks"
	listingsHandler "staysboard/internal/api/listings"
	rulesHandler "staysboard/internal/api/rules"
	statsHandler "staysboard/internal/api/stats"
	"staysboard/internal/config"
	kafkax "staysboard/internal/kafka"
	"staysboard/internal/middleware"
	redisx "staysboard/internal/redis"
	authService "staysboard/internal/service/auth"
	blocksService "staysboard/internal/service/blocks"
	dashboardService "staysboard/internal/service/dashboard"
	listingsService "staysboard/internal/service/listings"
	rulesService "staysboard/internal/service/rules"
	"staysboard/internal/stays"
	"staysboard/internal/store"
	storeActions "staysboard/internal/store/actions"
	storeUsers "staysboard/internal/store/users"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(r *gin.Engine, log *zap.Logger) {
	r.Use(middleware.MetricsMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Staysboard",
			"description": "Booking-operations dashboard over the Stays property-management API.",
			"version":     "1.0.0",
			"docs":        "/docs",
			"endpoints":   []string{"/v1/health", "/v1/stats", "/v1/listings", "/v1/blocks", "/v1/auth"},
		})
	})
	r.GET("/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterDocs(r)
	cfg := config.Load()

	cache := redisx.NewCache(cfg.RedisAddr)
	r.Use(middleware.HybridRateLimit(cache.GetClient(), 50, 100))

	client := stays.NewClient(cfg.StaysBaseURL, cfg.StaysClientID, cfg.StaysClientSecret, cfg.StaysRPS, cfg.StaysMaxRetries)
	producer := kafkax.NewProducer([]string{cfg.KafkaBrokers}, "listing-actions")

	// Read-only endpoints work without Postgres; only auth and the audited
	// writes depend on it.
	dashboardSvc := dashboardService.NewDashboardService(log, client, cfg.DefaultListingID, cfg.PriceCurrency)
	listingsSvc := listingsService.NewListingsService(log, client, cache, time.Duration(cfg.ListingCacheTTLSeconds)*time.Second)
	statsHandler.NewStatsHandler(log, dashboardSvc, cfg.JWTSigningSecret).Register(r)
	listingsHandler.NewListingsHandler(log, listingsSvc, cfg.JWTSigningSecret).Register(r)

	db, err := store.NewDB(context.Background(), cfg.PostgresURL, int32(cfg.MaxDBConnections))
	if err == nil {
		usersRepo := storeUsers.NewUsersRepository(db, log)
		actionsRepo := storeActions.NewActionsRepository(db, log)

		authSvc := authService.NewAuthService(log, usersRepo, cfg.JWTSigningSecret)
		blocksSvc := blocksService.NewBlocksService(log, client, producer, actionsRepo)
		rulesSvc := rulesService.NewRulesService(log, client, producer, actionsRepo)

		authHandler.NewAuthHandler(log, authSvc, cfg.JWTSigningSecret).Register(r)
		blocksHandler.NewBlocksHandler(log, blocksSvc, cfg.JWTSigningSecret).Register(r)
		rulesHandler.NewRulesHandler(log, rulesSvc, cfg.JWTSigningSecret).Register(r)
	} else {
		log.Warn("db init failed", zap.Error(err))
	}
}
