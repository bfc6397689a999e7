package handlers

import (
	"errors"
	"net/http"
	"strings"

	"organizer-portal/internal/auth"
	"organizer-portal/internal/constants"
	"organizer-portal/internal/models"
	"organizer-portal/internal/stats"
	"organizer-portal/internal/storage"
	"organizer-portal/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var invitationStatuses = []string{
	models.InvitationStatusSent,
	models.InvitationStatusOpened,
	models.InvitationStatusAccepted,
	models.InvitationStatusDeclined,
}

type invitationRow struct {
	models.Invitation
	EventName string
	Link      string
}

type invitationsView struct {
	Invitations []invitationRow
	Events      []models.Event
	Filter      string
	Counts      map[string]int
	Statuses    []string
	MaxGuests   int
	Form        models.InvitationRequest
	Errors      map[string]string
}

type inviteView struct {
	Valid      bool
	Token      string
	Invitation models.Invitation
	Event      models.Event
}

// inviteLink signs a link that stays valid for a fixed time after the
// invitation was sent.
func (h *Handler) inviteLink(inv models.Invitation) (string, error) {
	token, err := auth.GenerateInviteToken(inv.ID, inv.EventID, inv.CreatedAt)
	if err != nil {
		return "", err
	}
	return h.baseURL + "/invite/" + token, nil
}

func (h *Handler) renderInvitations(c *gin.Context, status int, form models.InvitationRequest, errs map[string]string) {
	ctx := c.Request.Context()
	filter := c.Query("event")

	events, err := h.store.ListEvents(ctx)
	if err != nil {
		h.fail(c, "list events", err)
		return
	}
	list, err := h.store.ListInvitations(ctx, filter)
	if err != nil {
		h.fail(c, "list invitations", err)
		return
	}

	names := eventNames(events)
	view := invitationsView{
		Events:    events,
		Filter:    filter,
		Counts:    stats.StatusCounts(list, func(inv models.Invitation) string { return inv.Status }),
		Statuses:  invitationStatuses,
		MaxGuests: constants.MaxInvitationGuests,
		Form:      form,
		Errors:    errs,
	}
	for _, inv := range list {
		link, err := h.inviteLink(inv)
		if err != nil {
			h.fail(c, "sign invitation link", err)
			return
		}
		view.Invitations = append(view.Invitations, invitationRow{Invitation: inv, EventName: names[inv.EventID], Link: link})
	}
	h.render(c, status, "invitations.html", h.page(c, "invitations", "Invitations", view))
}

func (h *Handler) Invitations(c *gin.Context) {
	h.renderInvitations(c, http.StatusOK, models.InvitationRequest{EventID: c.Query("event")}, nil)
}

func (h *Handler) CreateInvitation(c *gin.Context) {
	ctx := c.Request.Context()
	var req models.InvitationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderInvitations(c, http.StatusUnprocessableEntity, req, formErrors(err))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if _, err := h.store.GetEvent(ctx, req.EventID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderInvitations(c, http.StatusUnprocessableEntity, req, map[string]string{"event_id": "Choose one of your events."})
			return
		}
		h.fail(c, "load event", err)
		return
	}

	inv := models.Invitation{
		ID:        utils.GenerateID("inv"),
		EventID:   req.EventID,
		Name:      req.Name,
		Email:     req.Email,
		Guests:    req.Guests,
		Status:    models.InvitationStatusSent,
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: h.clock.Now(),
	}
	if err := h.store.CreateInvitation(ctx, inv); err != nil {
		h.fail(c, "create invitation", err)
		return
	}

	h.logger.Info("invitation sent", zap.String("id", inv.ID), zap.String("event", inv.EventID))
	redirect(c, "/invitations", "invitation_sent")
}

func (h *Handler) DeleteInvitation(c *gin.Context) {
	err := h.store.DeleteInvitation(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		h.renderError(c, http.StatusNotFound, "That invitation no longer exists.")
		return
	}
	if err != nil {
		h.fail(c, "delete invitation", err)
		return
	}
	redirect(c, "/invitations", "invitation_deleted")
}

// resolveInvite checks the link token and loads what it points at. ok is
// false for bad, expired or withdrawn links.
func (h *Handler) resolveInvite(c *gin.Context) (view inviteView, ok bool, err error) {
	ctx := c.Request.Context()
	claims, err := auth.ValidateInviteToken(c.Param("token"))
	if err != nil {
		h.logger.Debug("rejected invitation link", zap.Error(err))
		return inviteView{}, false, nil
	}

	inv, err := h.store.GetInvitation(ctx, claims.InvitationID)
	if errors.Is(err, storage.ErrNotFound) {
		return inviteView{}, false, nil
	}
	if err != nil {
		return inviteView{}, false, err
	}
	if inv.EventID != claims.EventID {
		return inviteView{}, false, nil
	}
	event, err := h.store.GetEvent(ctx, inv.EventID)
	if errors.Is(err, storage.ErrNotFound) {
		return inviteView{}, false, nil
	}
	if err != nil {
		return inviteView{}, false, err
	}
	return inviteView{Valid: true, Token: c.Param("token"), Invitation: inv, Event: event}, true, nil
}

// InvitePage is the public page behind an invitation link. Opening it moves
// a sent invitation to opened.
func (h *Handler) InvitePage(c *gin.Context) {
	view, ok, err := h.resolveInvite(c)
	if err != nil {
		h.fail(c, "load invitation", err)
		return
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
	} else if view.Invitation.Status == models.InvitationStatusSent {
		if err := h.store.UpdateInvitationStatus(c.Request.Context(), view.Invitation.ID, models.InvitationStatusOpened); err != nil {
			h.fail(c, "open invitation", err)
			return
		}
		view.Invitation.Status = models.InvitationStatusOpened
	}

	p := h.page(c, "", "Invitation", view)
	p.Public = true
	h.render(c, status, "invite.html", p)
}

// RespondInvite records the guest's answer and notifies the organizer.
func (h *Handler) RespondInvite(c *gin.Context) {
	ctx := c.Request.Context()
	view, ok, err := h.resolveInvite(c)
	if err != nil {
		h.fail(c, "load invitation", err)
		return
	}
	if !ok {
		p := h.page(c, "", "Invitation", view)
		p.Public = true
		h.render(c, http.StatusNotFound, "invite.html", p)
		return
	}

	var status, verb string
	switch c.PostForm("response") {
	case "accept":
		status, verb = models.InvitationStatusAccepted, "accepted"
	case "decline":
		status, verb = models.InvitationStatusDeclined, "declined"
	default:
		c.Redirect(http.StatusSeeOther, "/invite/"+view.Token)
		return
	}

	inv := view.Invitation
	if inv.Status != status {
		if err := h.store.UpdateInvitationStatus(ctx, inv.ID, status); err != nil {
			h.fail(c, "answer invitation", err)
			return
		}
		n := models.Notification{
			ID:        utils.GenerateID("ntf"),
			Kind:      models.NotificationSystem,
			Title:     inv.Name + " " + verb + " your invitation",
			Body:      view.Event.Name,
			CreatedAt: h.clock.Now(),
		}
		if err := h.store.CreateNotification(ctx, n); err != nil {
			h.logger.Warn("create notification", zap.Error(err))
		}
	}
	c.Redirect(http.StatusSeeOther, "/invite/"+view.Token)
}
