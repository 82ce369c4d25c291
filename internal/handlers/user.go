package handlers

import (
	"net/http"

	"ecohub/internal/dto"
	"ecohub/internal/middleware"
	"ecohub/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// MyEntities GET /users/me/entities 按类型分组
func (h *UserHandler) MyEntities(c *gin.Context) {
	grouped, err := h.users.Entities(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, grouped)
}

func (h *UserHandler) MyBookmarks(c *gin.Context) {
	bookmarks, err := h.users.Bookmarks(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, bookmarks)
}

// Delete DELETE /users/:id 本人或管理员
func (h *UserHandler) Delete(c *gin.Context) {
	msg, err := h.users.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": msg})
}

// SetRole PATCH /users/:id/role 仅管理员
func (h *UserHandler) SetRole(c *gin.Context) {
	var req dto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}
