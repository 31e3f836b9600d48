package access

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fileshare/internal/middleware"
	"fileshare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterUserRoutes(user *gin.RouterGroup) {
	user.GET("/files", h.ListMyFiles)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/grant-access", h.GrantAccess)
}

func (h *Handler) GrantAccess(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id and file_id are required")
		return
	}

	grant, err := h.service.Grant(c.Request.Context(), req.UserID, req.FileID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, ErrFileNotFound):
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
		default:
			response.Error(c, http.StatusInternalServerError, "GRANT_FAILED", "Failed to grant access")
		}
		return
	}

	response.Success(c, http.StatusCreated, GrantResponse{
		ID:     grant.ID,
		UserID: grant.UserID,
		FileID: grant.FileID,
	})
}

func (h *Handler) ListMyFiles(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	files, err := h.service.ListAccessibleFiles(c.Request.Context(), user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list files")
		return
	}

	response.Success(c, http.StatusOK, files)
}
