package blocks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authMiddleware "staysboard/internal/middleware"
	blocksService "staysboard/internal/service/blocks"
)

type BlocksHandler struct {
	log    *zap.Logger
	svc    *blocksService.BlocksService
	secret string
}

func NewBlocksHandler(log *zap.Logger, svc *blocksService.BlocksService, secret string) *BlocksHandler {
	return &BlocksHandler{log: log, svc: svc, secret: secret}
}

func (h *BlocksHandler) Register(r *gin.Engine) {
	protected := r.Group("/v1/blocks")
	protected.Use(authMiddleware.Auth(h.secret, false))
	{
		protected.POST("", h.create)
	}
}

func (h *BlocksHandler) create(c *gin.Context) {
	var req blocksService.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Actor = c.GetString("uid")

	conf, status, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if status >= 500 {
			h.log.Error("block creation failed", zap.Error(err), zap.String("listing", req.ListingID))
			c.JSON(status, gin.H{"error": "failed to create block"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, gin.H{"block": conf})
}
