package listings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authMiddleware "staysboard/internal/middleware"
	listingsService "staysboard/internal/service/listings"
)

type ListingsHandler struct {
	log    *zap.Logger
	svc    *listingsService.ListingsService
	secret string
}

func NewListingsHandler(log *zap.Logger, svc *listingsService.ListingsService, secret string) *ListingsHandler {
	return &ListingsHandler{log: log, svc: svc, secret: secret}
}

func (h *ListingsHandler) Register(r *gin.Engine) {
	protected := r.Group("/v1/listings")
	protected.Use(authMiddleware.Auth(h.secret, false))
	{
		protected.GET("/:id", h.details)
	}
}

func (h *ListingsHandler) details(c *gin.Context) {
	details, err := h.svc.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("listing details fetch failed", zap.Error(err), zap.String("listing", c.Param("id")))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch listing details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": details})
}
