package handlers

import (
	"net/http"

	"ecohub/internal/models"
	"ecohub/internal/services"

	"github.com/gin-gonic/gin"
)

// UnifiedHandler 在通用实体接口之外提供按类型查询
type UnifiedHandler struct {
	*EntityHandler[models.UnifiedEntity, *models.UnifiedEntity]
	svc *services.UnifiedService
}

func NewUnifiedHandler(svc *services.UnifiedService) *UnifiedHandler {
	return &UnifiedHandler{
		EntityHandler: NewEntityHandler(svc.EntityService),
		svc:           svc,
	}
}

// ByType GET /unified-entities/by-type/:entityType
func (h *UnifiedHandler) ByType(c *gin.Context) {
	list, err := h.svc.FindByType(c.Request.Context(), c.Param("entityType"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

func (h *UnifiedHandler) Register(rg *gin.RouterGroup, authed, admin gin.HandlerFunc) {
	rg.GET("/by-type/:entityType", h.ByType)
	h.EntityHandler.Register(rg, authed, admin)
}
