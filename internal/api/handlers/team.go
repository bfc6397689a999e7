package handlers

import (
	"errors"
	"net/http"
	"strings"

	"organizer-portal/internal/auth"
	"organizer-portal/internal/models"
	"organizer-portal/internal/storage"
	"organizer-portal/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// owners are created with the account, never through the invite form
var invitableRoles = []string{models.RoleAdmin, models.RoleManager, models.RoleScanner}

type teamView struct {
	Members    []models.TeamMember
	Roles      []string
	Form       models.TeamInvite
	Errors     map[string]string
	Join       models.TeamJoin
	JoinErrors map[string]string
	NewCode    string
	NewMember  string
}

// team emails are stored trimmed and lower-cased
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) renderTeam(c *gin.Context, status int, view teamView) {
	members, err := h.store.ListTeamMembers(c.Request.Context())
	if err != nil {
		h.fail(c, "list team", err)
		return
	}
	view.Members = members
	view.Roles = invitableRoles
	h.render(c, status, "team.html", h.page(c, "team", "Team", view))
}

func (h *Handler) Team(c *gin.Context) {
	h.renderTeam(c, http.StatusOK, teamView{})
}

// InviteMember adds an invited member and shows their join code once.
func (h *Handler) InviteMember(c *gin.Context) {
	ctx := c.Request.Context()
	var req models.TeamInvite
	if err := c.ShouldBind(&req); err != nil {
		h.renderTeam(c, http.StatusUnprocessableEntity, teamView{Form: req, Errors: formErrors(err)})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	code, hash, err := auth.NewJoinCode()
	if err != nil {
		h.fail(c, "generate join code", err)
		return
	}
	member := models.TeamMember{
		ID:        utils.GenerateID("mem"),
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		Status:    models.MemberStatusInvited,
		JoinCode:  hash,
		InvitedAt: h.clock.Now(),
	}
	err = h.store.CreateTeamMember(ctx, member)
	if errors.Is(err, storage.ErrConflict) {
		h.renderTeam(c, http.StatusUnprocessableEntity, teamView{Form: req, Errors: map[string]string{"email": "This person is already on the team."}})
		return
	}
	if err != nil {
		h.fail(c, "create team member", err)
		return
	}

	h.logger.Info("team member invited", zap.String("id", member.ID), zap.String("role", member.Role))
	h.renderTeam(c, http.StatusCreated, teamView{NewCode: code, NewMember: member.Name})
}

// JoinTeam activates an invited member who presents the right join code.
func (h *Handler) JoinTeam(c *gin.Context) {
	ctx := c.Request.Context()
	var req models.TeamJoin
	if err := c.ShouldBind(&req); err != nil {
		h.renderTeam(c, http.StatusUnprocessableEntity, teamView{Join: req, JoinErrors: formErrors(err)})
		return
	}

	req.Email = normalizeEmail(req.Email)

	rejected := teamView{Join: req, JoinErrors: map[string]string{"code": "That code does not match an open invitation."}}
	member, err := h.store.GetTeamMemberByEmail(ctx, req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		h.renderTeam(c, http.StatusUnprocessableEntity, rejected)
		return
	}
	if err != nil {
		h.fail(c, "load team member", err)
		return
	}
	if member.Status != models.MemberStatusInvited || !auth.CheckJoinCode(member.JoinCode, req.Code) {
		h.renderTeam(c, http.StatusUnprocessableEntity, rejected)
		return
	}

	if err := h.store.ActivateTeamMember(ctx, member.ID); err != nil {
		h.fail(c, "activate team member", err)
		return
	}
	n := models.Notification{
		ID:        utils.GenerateID("ntf"),
		Kind:      models.NotificationTeam,
		Title:     member.Name + " joined the team",
		Body:      "Role: " + member.Role,
		CreatedAt: h.clock.Now(),
	}
	if err := h.store.CreateNotification(ctx, n); err != nil {
		h.logger.Warn("create notification", zap.Error(err))
	}
	redirect(c, "/team", "member_joined")
}

func (h *Handler) RemoveMember(c *gin.Context) {
	err := h.store.DeleteTeamMember(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.renderError(c, http.StatusNotFound, "That team member no longer exists.")
	case errors.Is(err, storage.ErrOwnerRemoval):
		h.renderError(c, http.StatusForbidden, "The account owner cannot be removed.")
	case err != nil:
		h.fail(c, "remove team member", err)
	default:
		redirect(c, "/team", "member_removed")
	}
}
