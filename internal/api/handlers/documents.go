package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"organizer-portal/internal/documents"
	"organizer-portal/internal/models"
	"organizer-portal/internal/storage"
	"organizer-portal/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type kindOption struct {
	Value string
	Label string
}

var documentKinds = []kindOption{
	{Value: models.DocumentAttendees, Label: "Attendee list"},
	{Value: models.DocumentSales, Label: "Sales report"},
	{Value: models.DocumentCheckIns, Label: "Check-in report"},
}

type documentsView struct {
	Documents []models.Document
	Events    []models.Event
	Kinds     []kindOption
	Form      models.DocumentRequest
	Errors    map[string]string
}

func (h *Handler) renderDocuments(c *gin.Context, status int, form models.DocumentRequest, errs map[string]string) {
	ctx := c.Request.Context()
	docs, err := h.store.ListDocuments(ctx)
	if err != nil {
		h.fail(c, "list documents", err)
		return
	}
	events, err := h.store.ListEvents(ctx)
	if err != nil {
		h.fail(c, "list events", err)
		return
	}
	view := documentsView{Documents: docs, Events: events, Kinds: documentKinds, Form: form, Errors: errs}
	h.render(c, status, "documents.html", h.page(c, "documents", "Documents", view))
}

func (h *Handler) Documents(c *gin.Context) {
	h.renderDocuments(c, http.StatusOK, models.DocumentRequest{}, nil)
}

// GenerateDocument stores a document record for the chosen event and kind.
// The file itself is built on download.
func (h *Handler) GenerateDocument(c *gin.Context) {
	ctx := c.Request.Context()
	var req models.DocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderDocuments(c, http.StatusUnprocessableEntity, req, formErrors(err))
		return
	}

	event, err := h.store.GetEvent(ctx, req.EventID)
	if errors.Is(err, storage.ErrNotFound) {
		h.renderDocuments(c, http.StatusUnprocessableEntity, req, map[string]string{"event_id": "Choose one of your events."})
		return
	}
	if err != nil {
		h.fail(c, "load event", err)
		return
	}

	rows, err := documents.Build(ctx, h.store, event.ID, req.Kind)
	if err != nil {
		h.fail(c, "build document", err)
		return
	}
	doc := models.Document{
		ID:        utils.GenerateID("doc"),
		EventID:   event.ID,
		Kind:      req.Kind,
		Name:      documents.Title(event, req.Kind),
		Rows:      len(rows) - 1,
		CreatedAt: h.clock.Now(),
	}
	if err := h.store.CreateDocument(ctx, doc); err != nil {
		h.fail(c, "create document", err)
		return
	}

	h.logger.Info("document generated", zap.String("id", doc.ID), zap.String("kind", doc.Kind), zap.String("event", doc.EventID))
	redirect(c, "/documents", "document_ready")
}

// DownloadDocument streams the CSV for a stored document, rebuilt from
// current data.
func (h *Handler) DownloadDocument(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.store.GetDocument(ctx, c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		h.renderError(c, http.StatusNotFound, "We could not find that document.")
		return
	}
	if err != nil {
		h.fail(c, "load document", err)
		return
	}

	rows, err := documents.Build(ctx, h.store, doc.EventID, doc.Kind)
	if err != nil {
		h.fail(c, "build document", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, documents.FileName(doc)))
	c.Status(http.StatusOK)
	if err := documents.WriteCSV(c.Writer, rows); err != nil {
		h.logger.Error("write document", zap.String("id", doc.ID), zap.Error(err))
	}
}
