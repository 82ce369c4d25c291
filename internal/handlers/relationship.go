package handlers

import (
	"net/http"

	"ecohub/internal/dto"
	"ecohub/internal/middleware"
	"ecohub/internal/models"
	"ecohub/internal/services"
	"ecohub/internal/validation"

	"github.com/gin-gonic/gin"
)

type RelationshipHandler struct {
	rels  *services.RelationshipService
	multi *services.MultiEntityService
}

func NewRelationshipHandler(rels *services.RelationshipService, multi *services.MultiEntityService) *RelationshipHandler {
	return &RelationshipHandler{rels: rels, multi: multi}
}

func (h *RelationshipHandler) Create(c *gin.Context) {
	var req dto.CreateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rel, err := h.rels.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, rel)
}

// Delete 幂等
func (h *RelationshipHandler) Delete(c *gin.Context) {
	if err := h.rels.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Relationship deleted successfully"})
}

// Related GET /relationships/:entityType/:id
func (h *RelationshipHandler) Related(c *gin.Context) {
	entityType, ok := models.ParseEntityType(c.Param("entityType"))
	if !ok {
		respondError(c, services.BadRequest("unsupported entity type: %s", c.Param("entityType")))
		return
	}
	rels, err := h.rels.GetRelated(c.Request.Context(), c.Param("id"), entityType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rels)
}

// CreateMultiEntity POST /organizations/multi-entity
func (h *RelationshipHandler) CreateMultiEntity(c *gin.Context) {
	var req dto.MultiEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.Wrap(services.BadRequest("%s", validation.Translate(err)), "failed to create multi-entity"))
		return
	}
	resp, err := h.multi.Create(c.Request.Context(), &req, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, resp)
}
