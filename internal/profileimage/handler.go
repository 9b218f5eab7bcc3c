package profileimage

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"profile-backend/internal/shared/server/middleware"
	"profile-backend/internal/shared/server/respond"
	"profile-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc      *Service
	MaxBytes int64
}

func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{Svc: svc, MaxBytes: maxBytes}
}

// RegisterRoutes mounts the profile-image endpoints. uploadLimit throttles
// the transcoding path; pass nil to disable.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, uploadLimit gin.HandlerFunc) {
	if uploadLimit != nil {
		rg.POST("/user/profile-image", uploadLimit, h.upload)
	} else {
		rg.POST("/user/profile-image", h.upload)
	}
	rg.GET("/user/profile-image", h.get)
	rg.DELETE("/user/profile-image", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusForbidden, "forbidden", "authentication required", nil)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Only image files are allowed", nil)
		return
	}
	defer file.Close()

	if h.MaxBytes > 0 && header.Size > h.MaxBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "File exceeds the size limit", nil)
		return
	}

	var reader io.Reader = file
	if h.MaxBytes > 0 {
		reader = io.LimitReader(file, h.MaxBytes)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Only image files are allowed", nil)
		return
	}

	img, err := h.Svc.Save(c.Request.Context(), userID, data, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Only image files are allowed", nil)
		case errors.Is(err, ErrInvalidImage):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid image file", nil)
		default:
			telemetry.Error("profileimage.upload.failed", map[string]any{
				"err":        err.Error(),
				"user_id":    userID,
				"size_bytes": header.Size,
				"request_id": c.GetString("requestId"),
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to upload profile image", nil)
		}
		return
	}

	respond.OK(c, gin.H{"profileImage": img.Base64()})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusForbidden, "forbidden", "authentication required", nil)
		return
	}

	encoded, err := h.Svc.Encoded(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.OK(c, gin.H{"profileImage": nil})
			return
		}
		telemetry.Error("profileimage.get.failed", map[string]any{
			"err":        err.Error(),
			"user_id":    userID,
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load profile image", nil)
		return
	}

	respond.OK(c, gin.H{"profileImage": encoded})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusForbidden, "forbidden", "authentication required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), userID); err != nil {
		telemetry.Error("profileimage.delete.failed", map[string]any{
			"err":        err.Error(),
			"user_id":    userID,
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete profile image", nil)
		return
	}

	respond.Message(c, "Profile image deleted successfully")
}
