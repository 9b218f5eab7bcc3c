package demo

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"profile-backend/internal/shared/server/respond"
)

// Handler serves the demo endpoints. /api/demo sits in the lenient origin
// tier, /api/test is unrestricted; both exist so the gate has something to
// guard in every tier.
type Handler struct {
	mu      sync.RWMutex
	message string
}

func NewHandler() *Handler {
	return &Handler{message: "Hello from profile backend!"}
}

type messageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/demo", h.getMessage)
	rg.POST("/demo", h.setMessage)
	rg.GET("/test", h.hello)
	rg.POST("/test", h.echo)
}

func (h *Handler) getMessage(c *gin.Context) {
	h.mu.RLock()
	msg := h.message
	h.mu.RUnlock()
	respond.OK(c, gin.H{"message": msg})
}

func (h *Handler) setMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}
	h.mu.Lock()
	h.message = req.Message
	h.mu.Unlock()
	respond.OK(c, gin.H{"message": req.Message})
}

func (h *Handler) hello(c *gin.Context) {
	respond.OK(c, gin.H{"message": "Hello from protected endpoint"})
}

func (h *Handler) echo(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}
	respond.OK(c, gin.H{"message": req.Message})
}
