package rules

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authMiddleware "staysboard/internal/middleware"
	rulesService "staysboard/internal/service/rules"
)

type RulesHandler struct {
	log    *zap.Logger
	svc    *rulesService.RulesService
	secret string
}

func NewRulesHandler(log *zap.Logger, svc *rulesService.RulesService, secret string) *RulesHandler {
	return &RulesHandler{log: log, svc: svc, secret: secret}
}

func (h *RulesHandler) Register(r *gin.Engine) {
	protected := r.Group("/v1/listings")
	protected.Use(authMiddleware.Auth(h.secret, false))
	{
		protected.GET("/:id/rules", h.get)
		protected.PATCH("/:id/rules", h.update)
	}
}

func (h *RulesHandler) get(c *gin.Context) {
	rules, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("rules fetch failed", zap.Error(err), zap.String("listing", c.Param("id")))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch house rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (h *RulesHandler) update(c *gin.Context) {
	var req rulesService.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Actor = c.GetString("uid")

	rules, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.log.Error("rules update failed", zap.Error(err), zap.String("listing", c.Param("id")))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update house rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}
