package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"organizer-portal/internal/clock"
	"organizer-portal/internal/config"
	"organizer-portal/internal/models"
	"organizer-portal/internal/stats"
	"organizer-portal/internal/storage"
	"organizer-portal/internal/web"
	"organizer-portal/internal/widget"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	store     storage.Store
	views     *web.Renderer
	widgets   *widget.Service
	clock     clock.Clock
	logger    *zap.Logger
	baseURL   string
	minPayout int64
	payoutMu  sync.Mutex
}

func NewHandler(store storage.Store, views *web.Renderer, widgets *widget.Service, clk clock.Clock, logger *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		views:     views,
		widgets:   widgets,
		clock:     clk,
		logger:    logger,
		baseURL:   cfg.Server.PublicBaseURL,
		minPayout: cfg.Payouts.MinimumCents,
	}
}

func init() {
	// report validation errors under the form field name
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// notices are passed through the redirect after a successful POST
var notices = map[string]string{
	"invitation_sent":    "Invitation sent.",
	"invitation_deleted": "Invitation deleted.",
	"document_ready":     "Document generated. It is ready to download.",
	"payout_requested":   "Payout requested. It will be processed with the next scheduled run.",
	"member_removed":     "Team member removed.",
	"member_joined":      "Membership activated. Welcome to the team!",
	"notifications_read": "All notifications marked as read.",
}

// page builds the layout data shared by every portal page.
func (h *Handler) page(c *gin.Context, nav, title string, data any) web.Page {
	ctx := c.Request.Context()
	p := web.Page{Title: title, Nav: nav, Data: data, Notice: notices[c.Query("notice")]}

	org, err := h.store.GetOrganizer(ctx)
	if err != nil {
		h.logger.Error("load organizer", zap.Error(err))
	}
	p.Organizer = org

	list, err := h.store.ListNotifications(ctx)
	if err != nil {
		h.logger.Error("load notifications", zap.Error(err))
	}
	p.Unread = stats.UnreadCount(list)
	return p
}

func (h *Handler) render(c *gin.Context, status int, name string, p web.Page) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.views.Render(c.Writer, name, p); err != nil {
		h.logger.Error("render page", zap.String("page", name), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

type errorView struct {
	Status  int
	Message string
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	p := h.page(c, "", http.StatusText(status), errorView{Status: status, Message: message})
	h.render(c, status, "error.html", p)
}

// fail logs an unexpected error and renders the 500 page.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.logger.Error(op, zap.Error(err), zap.String("path", c.Request.URL.Path))
	h.renderError(c, http.StatusInternalServerError, "Something went wrong on our side. Please try again.")
}

func redirect(c *gin.Context, path, notice string) {
	if notice != "" {
		path += "?notice=" + notice
	}
	c.Redirect(http.StatusSeeOther, path)
}

// formErrors turns a binding error into messages keyed by form field. Errors
// that are not validation failures (e.g. a number that does not parse) are
// reported under "form".
func formErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Some values could not be read. Please check the form."
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	case "oneof":
		return "Choose one of the listed options."
	default:
		return "This value is not valid."
	}
}

// eventNames maps event ids to names for tables that list records of
// several events.
func eventNames(events []models.Event) map[string]string {
	names := make(map[string]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}
	return names
}

func (h *Handler) NotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "This page does not exist.")
}
