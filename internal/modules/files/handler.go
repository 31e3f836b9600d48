package files

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fileshare/internal/middleware"
	"fileshare/internal/modules/access"
	"fileshare/internal/pkg/response"
)

// Handler manages the HTTP surface of the catalog: admin upload, listing
// and deletion, plus authorized downloads.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/upload", h.Upload)
	admin.GET("/files", h.ListAll)
	admin.DELETE("/files/:id", h.Delete)
}

func (h *Handler) RegisterUserRoutes(user *gin.RouterGroup) {
	user.GET("/download/:id", h.Download)
}

func (h *Handler) Upload(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file provided")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", "Failed to read uploaded file")
		return
	}
	defer src.Close()

	file, err := h.service.Upload(c.Request.Context(), actor, fileHeader.Filename, src, fileHeader.Size)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "File is empty")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds maximum allowed size")
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store file")
		}
		return
	}

	response.Success(c, http.StatusCreated, file)
}

func (h *Handler) ListAll(c *gin.Context) {
	files, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list files")
		return
	}
	response.Success(c, http.StatusOK, files)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid file ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete file")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"detail": "File deleted successfully"})
}

func (h *Handler) Download(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid file ID")
		return
	}

	file, err := h.service.Download(c.Request.Context(), user, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileNotFound):
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "Not found")
		case errors.Is(err, access.ErrAccessDenied):
			response.Error(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		default:
			response.Error(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "Failed to download file")
		}
		return
	}

	c.FileAttachment(file.StoragePath, file.Filename)
}
