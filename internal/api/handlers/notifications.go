package handlers

import (
	"net/http"

	"organizer-portal/internal/models"

	"github.com/gin-gonic/gin"
)

type notificationsView struct {
	Notifications []models.Notification
}

func (h *Handler) Notifications(c *gin.Context) {
	list, err := h.store.ListNotifications(c.Request.Context())
	if err != nil {
		h.fail(c, "list notifications", err)
		return
	}
	h.render(c, http.StatusOK, "notifications.html", h.page(c, "notifications", "Notifications", notificationsView{Notifications: list}))
}

func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	if err := h.store.MarkNotificationsRead(c.Request.Context()); err != nil {
		h.fail(c, "mark notifications read", err)
		return
	}
	redirect(c, "/notifications", "notifications_read")
}
