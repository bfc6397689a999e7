package handlers

import (
	"errors"
	"net/http"
	"strings"

	"organizer-portal/internal/constants"
	"organizer-portal/internal/models"
	"organizer-portal/internal/stats"
	"organizer-portal/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type checkInRow struct {
	models.Ticket
	EventName string
}

type scannerView struct {
	Progress []stats.EventSummary
	Recent   []checkInRow
	Result   *models.ScanResult
	Code     string
}

func (h *Handler) renderScanner(c *gin.Context, status int, result *models.ScanResult, code string) {
	ctx := c.Request.Context()
	events, err := h.store.ListEvents(ctx)
	if err != nil {
		h.fail(c, "list events", err)
		return
	}
	recent, err := h.store.ListCheckIns(ctx, constants.RecentCheckInsLimit)
	if err != nil {
		h.fail(c, "list check-ins", err)
		return
	}

	view := scannerView{Result: result, Code: code}
	for _, e := range events {
		if !e.Publishable() {
			continue
		}
		tickets, err := h.store.ListTickets(ctx, e.ID)
		if err != nil {
			h.fail(c, "list tickets", err)
			return
		}
		view.Progress = append(view.Progress, stats.Summarize(e, nil, tickets))
	}
	names := eventNames(events)
	for _, t := range recent {
		view.Recent = append(view.Recent, checkInRow{Ticket: t, EventName: names[t.EventID]})
	}
	h.render(c, status, "scanner.html", h.page(c, "scanner", "Scanner", view))
}

func (h *Handler) Scanner(c *gin.Context) {
	h.renderScanner(c, http.StatusOK, nil, "")
}

// Scan checks a typed ticket code in. A ticket is only ever checked in once;
// repeated scans report the first check-in.
func (h *Handler) Scan(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.PostForm("code")))
	if code == "" {
		h.renderScanner(c, http.StatusUnprocessableEntity, &models.ScanResult{Outcome: models.ScanUnknown}, "")
		return
	}

	result, err := h.scan(c, code)
	if err != nil {
		h.fail(c, "scan ticket", err)
		return
	}
	h.logger.Info("ticket scanned", zap.String("code", code), zap.String("outcome", result.Outcome))
	// keep the field empty after a successful scan so the next code can be typed
	if result.Outcome == models.ScanValid {
		code = ""
	}
	h.renderScanner(c, http.StatusOK, result, code)
}

func (h *Handler) scan(c *gin.Context, code string) (*models.ScanResult, error) {
	ctx := c.Request.Context()
	result := &models.ScanResult{Code: code}

	ticket, err := h.store.CheckInTicket(ctx, code, h.clock.Now())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		result.Outcome = models.ScanUnknown
		return result, nil
	case errors.Is(err, storage.ErrAlreadyCheckedIn):
		result.Outcome = models.ScanAlreadyCheckedIn
	case err != nil:
		return nil, err
	default:
		result.Outcome = models.ScanValid
	}

	result.Ticket = &ticket
	if event, err := h.store.GetEvent(ctx, ticket.EventID); err == nil {
		result.Event = &event
	}
	return result, nil
}
