package stats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authMiddleware "staysboard/internal/middleware"
	dashboardService "staysboard/internal/service/dashboard"
)

type StatsHandler struct {
	log    *zap.Logger
	svc    *dashboardService.DashboardService
	secret string
}

func NewStatsHandler(log *zap.Logger, svc *dashboardService.DashboardService, secret string) *StatsHandler {
	return &StatsHandler{log: log, svc: svc, secret: secret}
}

func (h *StatsHandler) Register(r *gin.Engine) {
	protected := r.Group("/v1/stats")
	protected.Use(authMiddleware.Auth(h.secret, false))
	{
		protected.GET("", h.search)
	}
}

func (h *StatsHandler) search(c *gin.Context) {
	req := dashboardService.SearchRequest{
		From:      c.Query("from"),
		To:        c.Query("to"),
		ListingID: c.Query("listingId"),
	}

	result, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, dashboardService.ErrMissingRange) || errors.Is(err, dashboardService.ErrInvertedRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("search failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch booking data"})
		return
	}
	c.JSON(http.StatusOK, result)
}
