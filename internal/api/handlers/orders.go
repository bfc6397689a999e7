package handlers

import (
	"net/http"

	"organizer-portal/internal/models"

	"github.com/gin-gonic/gin"
)

type ordersView struct {
	Orders   []orderRow
	Events   []models.Event
	Filter   models.OrderFilter
	Statuses []string
}

var orderStatuses = []string{models.OrderStatusPaid, models.OrderStatusPending, models.OrderStatusRefunded}

// Orders lists orders across events, filtered by the event and status query
// parameters. Unknown status values are ignored.
func (h *Handler) Orders(c *gin.Context) {
	ctx := c.Request.Context()
	filter := models.OrderFilter{EventID: c.Query("event")}
	for _, s := range orderStatuses {
		if c.Query("status") == s {
			filter.Status = s
		}
	}

	events, err := h.store.ListEvents(ctx)
	if err != nil {
		h.fail(c, "list events", err)
		return
	}
	orders, err := h.store.ListOrders(ctx, filter)
	if err != nil {
		h.fail(c, "list orders", err)
		return
	}

	names := eventNames(events)
	view := ordersView{Events: events, Filter: filter, Statuses: orderStatuses}
	for _, o := range orders {
		view.Orders = append(view.Orders, orderRow{Order: o, EventName: names[o.EventID]})
	}
	h.render(c, http.StatusOK, "orders.html", h.page(c, "orders", "Orders", view))
}
