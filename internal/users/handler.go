package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"profile-backend/internal/profileimage"
	"profile-backend/internal/shared/server/middleware"
	"profile-backend/internal/shared/server/respond"
	"profile-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc    *Service
	Images *profileimage.Service
}

func NewHandler(svc *Service, images *profileimage.Service) *Handler {
	return &Handler{Svc: svc, Images: images}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user", h.currentUser)
	rg.PUT("/user/profile", h.updateProfile)
	rg.PUT("/user/password", h.updatePassword)
}

type userInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type updateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// currentUser returns the authenticated user's info together with the Base64
// profile image, or null when no image was ever uploaded.
func (h *Handler) currentUser(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		respond.Error(c, http.StatusForbidden, "forbidden", "authentication required", nil)
		return
	}

	user, err := h.Svc.GetByID(c.Request.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}

	var image any
	if encoded, err := h.Images.Encoded(c.Request.Context(), principal.UserID); err == nil {
		image = encoded
	} else if !errors.Is(err, profileimage.ErrNotFound) {
		telemetry.Error("users.current.image_failed", map[string]any{
			"err":        err.Error(),
			"user_id":    principal.UserID,
			"request_id": c.GetString("requestId"),
		})
	}

	respond.OK(c, gin.H{
		"user":         userInfo{ID: user.ID, Email: user.Email, Name: user.Name},
		"profileImage": image,
	})
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		respond.Error(c, http.StatusForbidden, "forbidden", "authentication required", nil)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name and email are required", nil)
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), principal.UserID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrInvalidEmail):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}

	respond.OK(c, userInfo{ID: user.ID, Email: user.Email, Name: user.Name})
}

func (h *Handler) updatePassword(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		respond.Error(c, http.StatusForbidden, "forbidden", "authentication required", nil)
		return
	}

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "newPassword is required", nil)
		return
	}

	err := h.Svc.UpdatePassword(c.Request.Context(), principal.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrInvalidPassword), errors.Is(err, ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "An error occurred while updating password", nil)
		}
		return
	}

	respond.Message(c, "Password updated successfully")
}
