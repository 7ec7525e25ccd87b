package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"admin-service/internal/observability"
)

const requestIDContextKey = "request_id"

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

func adminUIDFromContext(c *gin.Context) *string {
	if uid := c.GetString("adminUID"); uid != "" {
		return &uid
	}
	return nil
}

func (h *AdminHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), adminUIDFromContext(c), observability.IPFromRequest(c.Request))
}
