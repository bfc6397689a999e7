package handlers

import (
	"errors"
	"net/http"

	"organizer-portal/internal/format"
	"organizer-portal/internal/models"
	"organizer-portal/internal/storage"
	"organizer-portal/internal/web"
	"organizer-portal/internal/widget"

	"github.com/gin-gonic/gin"
)

// PreviewEvent is what the configurator needs to draw its live preview.
type PreviewEvent struct {
	ID          string          `json:"id" example:"evt_harbour_lights"`
	Name        string          `json:"name" example:"Harbour Lights Festival"`
	Date        string          `json:"date" example:"14 Nov 2026, 18:00"`
	Venue       string          `json:"venue" example:"Pier 7 Open Air, Hamburg"`
	PriceFrom   string          `json:"price_from" example:"€49.00"`
	Status      string          `json:"status" example:"on_sale"`
	TicketTypes []PreviewTicket `json:"ticket_types"`
}

type PreviewTicket struct {
	Name  string `json:"name" example:"Day Pass"`
	Price string `json:"price" example:"€49.00"`
}

type widgetView struct {
	Events  []models.Event
	Config  models.WidgetConfig
	Snippet models.WidgetSnippet
	Preview PreviewEvent
}

func previewOf(e models.Event, currency string) PreviewEvent {
	p := PreviewEvent{
		ID:          e.ID,
		Name:        e.Name,
		Date:        format.DateTime(e.StartsAt),
		Venue:       e.Venue,
		PriceFrom:   format.Money(e.LowestPrice(), currency),
		Status:      e.Status,
		TicketTypes: []PreviewTicket{},
	}
	if e.City != "" {
		p.Venue += ", " + e.City
	}
	for _, tt := range e.TicketTypes {
		p.TicketTypes = append(p.TicketTypes, PreviewTicket{Name: tt.Name, Price: format.Money(tt.PriceCents, currency)})
	}
	return p
}

// embeddableEvent loads an event that may be shown in the widget.
func (h *Handler) embeddableEvent(c *gin.Context, id string) (models.Event, error) {
	event, err := h.store.GetEvent(c.Request.Context(), id)
	if err != nil {
		return models.Event{}, err
	}
	if !event.Publishable() {
		return models.Event{}, storage.ErrNotFound
	}
	return event, nil
}

// WidgetConfigurator renders the widget page. The configuration comes from
// the query string so a configured page can be bookmarked.
func (h *Handler) WidgetConfigurator(c *gin.Context) {
	ctx := c.Request.Context()
	org, err := h.store.GetOrganizer(ctx)
	if err != nil {
		h.fail(c, "load organizer", err)
		return
	}
	all, err := h.store.ListEvents(ctx)
	if err != nil {
		h.fail(c, "list events", err)
		return
	}

	cfg := widget.FromQuery(c.Request.URL.Query())
	view := widgetView{}
	selected := -1
	for _, e := range all {
		if !e.Publishable() {
			continue
		}
		if e.ID == cfg.EventID {
			selected = len(view.Events)
		}
		view.Events = append(view.Events, e)
	}
	if len(view.Events) == 0 {
		h.renderError(c, http.StatusNotFound, "Publish an event first to configure the ticket widget.")
		return
	}
	if selected < 0 {
		selected = 0
		cfg.EventID = view.Events[0].ID
	}

	view.Config = cfg
	view.Snippet = widget.Snippet(h.baseURL, cfg)
	view.Preview = previewOf(view.Events[selected], org.Currency)
	h.render(c, http.StatusOK, "widget.html", h.page(c, "widget", "Ticket widget", view))
}

// WidgetPreview godoc
// @Summary Widget preview data
// @Description Display fields of a published event for the configurator preview
// @Tags widget
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} PreviewEvent
// @Failure 404 {object} ErrorResponse
// @Router /api/widget/events/{id} [get]
func (h *Handler) WidgetPreview(c *gin.Context) {
	event, err := h.embeddableEvent(c, c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event"})
		return
	}
	org, err := h.store.GetOrganizer(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load organizer"})
		return
	}
	c.JSON(http.StatusOK, previewOf(event, org.Currency))
}

// WidgetSnippet godoc
// @Summary Generate embed code
// @Description Normalizes a widget configuration and returns the script and iframe snippets for it
// @Tags widget
// @Produce json
// @Param event query string true "Event ID"
// @Param theme query string false "light or dark"
// @Param color query string false "Accent color #RRGGBB"
// @Param branding query string false "Show branding (1/0, true/false, yes/no)"
// @Param layout query string false "compact or extended"
// @Success 200 {object} models.WidgetSnippet
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/widget/snippet [get]
func (h *Handler) WidgetSnippet(c *gin.Context) {
	cfg := widget.FromQuery(c.Request.URL.Query())
	if cfg.EventID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event is required"})
		return
	}
	_, err := h.embeddableEvent(c, cfg.EventID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event"})
		return
	}
	c.JSON(http.StatusOK, widget.Snippet(h.baseURL, cfg))
}

const widgetUnavailable = `<!DOCTYPE html><html><head><meta charset="UTF-8"><title>Tickets</title></head>` +
	`<body style="font-family:sans-serif;color:#6b7280;margin:16px">This event is not available.</body></html>`

func (h *Handler) serveWidget(c *gin.Context, cfg models.WidgetConfig) {
	body, err := h.widgets.Render(c.Request.Context(), cfg)
	if errors.Is(err, widget.ErrUnavailable) {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(widgetUnavailable))
		return
	}
	if err != nil {
		h.fail(c, "render widget", err)
		return
	}
	c.Header("Cache-Control", "public, max-age=60")
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// WidgetEmbed serves /widget/embed?event=&theme=&branding=&color=&layout=.
func (h *Handler) WidgetEmbed(c *gin.Context) {
	h.serveWidget(c, widget.FromQuery(c.Request.URL.Query()))
}

// WidgetFrame serves the iframe form /widget/frame/:event?t=&c=&s=&b=.
func (h *Handler) WidgetFrame(c *gin.Context) {
	h.serveWidget(c, widget.FromFrame(c.Param("event"), c.Request.URL.Query()))
}

func (h *Handler) WidgetScript(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", web.EmbedScript())
}
