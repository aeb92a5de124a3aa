package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the caller's notification feed
type NotificationHandler struct {
	notifications usecase.NotificationUseCase
	logger        coreport.Logger
}

// NewNotificationHandler creates a new notification handler instance
func NewNotificationHandler(notifications usecase.NotificationUseCase, logger coreport.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	items, err := h.notifications.List(c.Request.Context(), p.UserID, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": dto.ToNotificationResponses(items)})
}
