package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/pkg/response"
	"github.com/tamilsociety/tls-platform/pkg/utils"
)

type NotificationHandler struct {
	svc *application.NotificationService
}

func NewNotificationHandler(svc *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// ListNotifications returns the caller's inbox, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))

	items, err := h.svc.List(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		badRequest(c, "invalid notification id")
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKResponse{OK: true})
}
