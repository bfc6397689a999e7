package handlers

import (
	"net/http"

	"organizer-portal/internal/constants"
	"organizer-portal/internal/models"
	"organizer-portal/internal/stats"

	"github.com/gin-gonic/gin"
)

type orderRow struct {
	models.Order
	EventName string
}

type dashboardView struct {
	Totals        stats.DashboardTotals
	Events        []stats.EventSummary
	RecentOrders  []orderRow
	Notifications []models.Notification
}

// Dashboard renders the portal home page.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	events, err := h.store.ListEvents(ctx)
	if err != nil {
		h.fail(c, "list events", err)
		return
	}
	orders, err := h.store.ListOrders(ctx, models.OrderFilter{})
	if err != nil {
		h.fail(c, "list orders", err)
		return
	}
	notifications, err := h.store.ListNotifications(ctx)
	if err != nil {
		h.fail(c, "list notifications", err)
		return
	}

	view := dashboardView{Totals: stats.Dashboard(events, notifications, h.clock.Now())}
	for _, e := range events {
		view.Events = append(view.Events, stats.Summarize(e, orders, nil))
	}
	names := eventNames(events)
	for i, o := range orders {
		if i == constants.RecentOrdersLimit {
			break
		}
		view.RecentOrders = append(view.RecentOrders, orderRow{Order: o, EventName: names[o.EventID]})
	}
	for _, n := range notifications {
		if !n.Read {
			view.Notifications = append(view.Notifications, n)
		}
	}

	h.render(c, http.StatusOK, "dashboard.html", h.page(c, "dashboard", "Dashboard", view))
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
