package storage

import (
	"context"
	"errors"
	"time"

	"organizer-portal/internal/models"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrAlreadyCheckedIn = errors.New("ticket already checked in")
	ErrOwnerRemoval     = errors.New("the owner cannot be removed")
)

// Store is everything the portal pages read and the few things they write.
// List methods return records newest first unless stated otherwise.
type Store interface {
	GetOrganizer(ctx context.Context) (models.Organizer, error)

	// ListEvents returns events ordered by start time.
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)

	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)

	ListTickets(ctx context.Context, eventID string) ([]models.Ticket, error)
	// CheckInTicket stamps the ticket. A ticket that was already checked in
	// is returned unchanged together with ErrAlreadyCheckedIn.
	CheckInTicket(ctx context.Context, code string, at time.Time) (models.Ticket, error)
	ListCheckIns(ctx context.Context, limit int) ([]models.Ticket, error)

	ListInvitations(ctx context.Context, eventID string) ([]models.Invitation, error)
	GetInvitation(ctx context.Context, id string) (models.Invitation, error)
	CreateInvitation(ctx context.Context, inv models.Invitation) error
	UpdateInvitationStatus(ctx context.Context, id, status string) error
	DeleteInvitation(ctx context.Context, id string) error

	ListNotifications(ctx context.Context) ([]models.Notification, error)
	CreateNotification(ctx context.Context, n models.Notification) error
	MarkNotificationsRead(ctx context.Context) error

	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, tx models.Transaction) error
	GetPayoutAccount(ctx context.Context) (models.PayoutAccount, error)

	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	GetTeamMemberByEmail(ctx context.Context, email string) (models.TeamMember, error)
	CreateTeamMember(ctx context.Context, m models.TeamMember) error
	ActivateTeamMember(ctx context.Context, id string) error
	DeleteTeamMember(ctx context.Context, id string) error

	ListDocuments(ctx context.Context) ([]models.Document, error)
	GetDocument(ctx context.Context, id string) (models.Document, error)
	CreateDocument(ctx context.Context, d models.Document) error
}
