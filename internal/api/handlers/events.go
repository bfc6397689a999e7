package handlers

import (
	"errors"
	"net/http"

	"organizer-portal/internal/constants"
	"organizer-portal/internal/models"
	"organizer-portal/internal/stats"
	"organizer-portal/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type eventView struct {
	Summary     stats.EventSummary
	TicketTypes []stats.TicketTypeRow
	SalesByDay  []stats.DayTotal
	Orders      []models.Order
}

// EventStatsResponse is the JSON form of the event page.
type EventStatsResponse struct {
	EventID        string            `json:"event_id"`
	Name           string            `json:"name"`
	Status         string            `json:"status"`
	Sold           int               `json:"sold"`
	Capacity       int               `json:"capacity"`
	Remaining      int               `json:"remaining"`
	FillPercent    int               `json:"fill_percent"`
	GrossCents     int64             `json:"gross_cents"`
	AvgOrderCents  int64             `json:"avg_order_cents"`
	CheckedIn      int               `json:"checked_in"`
	Issued         int               `json:"issued"`
	CheckInPercent int               `json:"check_in_percent"`
	TicketTypes    []TicketTypeStats `json:"ticket_types"`
	SalesByDay     []DaySales        `json:"sales_by_day"`
}

type TicketTypeStats struct {
	Name         string `json:"name"`
	PriceCents   int64  `json:"price_cents"`
	Sold         int    `json:"sold"`
	Quantity     int    `json:"quantity"`
	RevenueCents int64  `json:"revenue_cents"`
	FillPercent  int    `json:"fill_percent"`
}

type DaySales struct {
	Day         string `json:"day" example:"2026-10-17"`
	Tickets     int    `json:"tickets"`
	AmountCents int64  `json:"amount_cents"`
}

func (h *Handler) loadEventView(c *gin.Context) (eventView, error) {
	ctx := c.Request.Context()
	event, err := h.store.GetEvent(ctx, c.Param("id"))
	if err != nil {
		return eventView{}, err
	}
	orders, err := h.store.ListOrders(ctx, models.OrderFilter{EventID: event.ID})
	if err != nil {
		return eventView{}, err
	}
	tickets, err := h.store.ListTickets(ctx, event.ID)
	if err != nil {
		return eventView{}, err
	}

	view := eventView{
		Summary:     stats.Summarize(event, orders, tickets),
		TicketTypes: stats.TicketTypeRows(event),
		SalesByDay:  stats.SalesByDay(orders, constants.SalesByDayWindow),
		Orders:      orders,
	}
	if len(view.Orders) > constants.EventOrdersLimit {
		view.Orders = view.Orders[:constants.EventOrdersLimit]
	}
	return view, nil
}

// EventPage renders the stats page of one event.
func (h *Handler) EventPage(c *gin.Context) {
	view, err := h.loadEventView(c)
	if errors.Is(err, storage.ErrNotFound) {
		h.renderError(c, http.StatusNotFound, "We could not find that event.")
		return
	}
	if err != nil {
		h.fail(c, "load event", err)
		return
	}
	h.render(c, http.StatusOK, "event.html", h.page(c, "dashboard", view.Summary.Event.Name, view))
}

// EventStats godoc
// @Summary Event statistics
// @Description Sales, capacity and check-in numbers of one event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} EventStatsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/events/{id}/stats [get]
func (h *Handler) EventStats(c *gin.Context) {
	view, err := h.loadEventView(c)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err != nil {
		h.logger.Error("load event stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event"})
		return
	}

	s := view.Summary
	resp := EventStatsResponse{
		EventID:        s.Event.ID,
		Name:           s.Event.Name,
		Status:         s.Event.Status,
		Sold:           s.Sold,
		Capacity:       s.Capacity,
		Remaining:      s.Remaining,
		FillPercent:    s.FillPercent,
		GrossCents:     s.GrossCents,
		AvgOrderCents:  s.AvgOrderCents,
		CheckedIn:      s.CheckedIn,
		Issued:         s.Issued,
		CheckInPercent: s.CheckInPercent,
		TicketTypes:    []TicketTypeStats{},
		SalesByDay:     []DaySales{},
	}
	for _, tt := range view.TicketTypes {
		resp.TicketTypes = append(resp.TicketTypes, TicketTypeStats{
			Name:         tt.Name,
			PriceCents:   tt.PriceCents,
			Sold:         tt.Sold,
			Quantity:     tt.Quantity,
			RevenueCents: tt.RevenueCents,
			FillPercent:  tt.FillPercent,
		})
	}
	for _, d := range view.SalesByDay {
		resp.SalesByDay = append(resp.SalesByDay, DaySales{Day: d.Day.Format("2006-01-02"), Tickets: d.Tickets, AmountCents: d.AmountCents})
	}
	c.JSON(http.StatusOK, resp)
}
