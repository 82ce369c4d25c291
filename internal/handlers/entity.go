package handlers

import (
	"context"
	"net/http"

	"ecohub/internal/dto"
	"ecohub/internal/middleware"
	"ecohub/internal/models"
	"ecohub/internal/services"

	"github.com/gin-gonic/gin"
)

// EntityHandler 一种目录实体的 REST 接口
type EntityHandler[T any, PT interface {
	*T
	models.Entity
}] struct {
	svc *services.EntityService[T, PT]
}

func NewEntityHandler[T any, PT interface {
	*T
	models.Entity
}](svc *services.EntityService[T, PT]) *EntityHandler[T, PT] {
	return &EntityHandler[T, PT]{svc: svc}
}

// Create POST /<kind>
func (h *EntityHandler[T, PT]) Create(c *gin.Context) {
	req := h.svc.Kind().NewCreateRequest()
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	entity, err := h.svc.Create(c.Request.Context(), req, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, entity)
}

// List GET /<kind>?search=&status=
func (h *EntityHandler[T, PT]) List(c *gin.Context) {
	var filter dto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	list, err := h.svc.FindAll(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

func (h *EntityHandler[T, PT]) Get(c *gin.Context) {
	entity, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entity)
}

// Update PATCH /<kind>/:id 仅所有者
func (h *EntityHandler[T, PT]) Update(c *gin.Context) {
	req := h.svc.Kind().NewUpdateRequest()
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	entity, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entity)
}

// UpdateStatus PATCH /<kind>/:id/status 仅管理员
func (h *EntityHandler[T, PT]) UpdateStatus(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	entity, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entity)
}

func (h *EntityHandler[T, PT]) Delete(c *gin.Context) {
	msg, err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": msg})
}

func (h *EntityHandler[T, PT]) Rate(c *gin.Context) {
	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	entity, err := h.svc.Rate(c.Request.Context(), c.Param("id"), req, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entity)
}

func (h *EntityHandler[T, PT]) Ratings(c *gin.Context) {
	summary, err := h.svc.Ratings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, summary)
}

func (h *EntityHandler[T, PT]) Like(c *gin.Context) {
	h.interact(c, h.svc.Like)
}

func (h *EntityHandler[T, PT]) Unlike(c *gin.Context) {
	h.interact(c, h.svc.Unlike)
}

func (h *EntityHandler[T, PT]) Bookmark(c *gin.Context) {
	h.interact(c, h.svc.Bookmark)
}

func (h *EntityHandler[T, PT]) Unbookmark(c *gin.Context) {
	h.interact(c, h.svc.Unbookmark)
}

func (h *EntityHandler[T, PT]) interact(c *gin.Context, fn func(context.Context, string, *models.User) (*services.InteractionResult, error)) {
	res, err := fn(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, res)
}

// SetCover PUT /<kind>/:id/cover，multipart 字段 file
func (h *EntityHandler[T, PT]) SetCover(c *gin.Context) {
	h.upload(c, h.svc.SetCoverPicture)
}

// AddPicture POST /<kind>/:id/pictures
func (h *EntityHandler[T, PT]) AddPicture(c *gin.Context) {
	h.upload(c, h.svc.AddPicture)
}

func (h *EntityHandler[T, PT]) upload(c *gin.Context, fn func(context.Context, string, *dto.FileUpload, *models.User) (*models.Picture, error)) {
	file, closeFn, err := formFile(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeFn()

	picture, err := fn(c.Request.Context(), c.Param("id"), file, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, picture)
}

func (h *EntityHandler[T, PT]) ListPictures(c *gin.Context) {
	pictures, err := h.svc.ListPictures(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, pictures)
}

func (h *EntityHandler[T, PT]) RemovePicture(c *gin.Context) {
	err := h.svc.RemovePicture(c.Request.Context(), c.Param("id"), c.Param("pictureId"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Picture deleted successfully"})
}

// Register 挂载全部实体路由，authed 与 admin 为鉴权中间件
func (h *EntityHandler[T, PT]) Register(rg *gin.RouterGroup, authed, admin gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/ratings", h.Ratings)
	rg.GET("/:id/pictures", h.ListPictures)

	rg.POST("", authed, h.Create)
	rg.PATCH("/:id", authed, h.Update)
	rg.DELETE("/:id", authed, h.Delete)
	rg.PATCH("/:id/status", authed, admin, h.UpdateStatus)

	rg.POST("/:id/rate", authed, h.Rate)
	rg.POST("/:id/like", authed, h.Like)
	rg.DELETE("/:id/like", authed, h.Unlike)
	rg.POST("/:id/bookmark", authed, h.Bookmark)
	rg.DELETE("/:id/bookmark", authed, h.Unbookmark)

	rg.PUT("/:id/cover", authed, h.SetCover)
	rg.POST("/:id/pictures", authed, h.AddPicture)
	rg.DELETE("/:id/pictures/:pictureId", authed, h.RemovePicture)
}
