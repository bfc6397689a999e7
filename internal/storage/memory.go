package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"organizer-portal/internal/models"
)

// MemoryStore serves the demo account from memory. Writes live until the
// process exits.
type MemoryStore struct {
	mu   sync.RWMutex
	data DemoData
}

func NewMemoryStore(seed *DemoData) *MemoryStore {
	s := &MemoryStore{}
	if seed != nil {
		s.data = cloneDemo(*seed)
	}
	return s
}

func cloneDemo(d DemoData) DemoData {
	out := d
	out.Events = make([]models.Event, len(d.Events))
	for i, e := range d.Events {
		e.TicketTypes = append([]models.TicketType(nil), e.TicketTypes...)
		out.Events[i] = e
	}
	out.Orders = append([]models.Order(nil), d.Orders...)
	out.Tickets = make([]models.Ticket, len(d.Tickets))
	for i, t := range d.Tickets {
		if t.CheckedInAt != nil {
			at := *t.CheckedInAt
			t.CheckedInAt = &at
		}
		out.Tickets[i] = t
	}
	out.Invitations = append([]models.Invitation(nil), d.Invitations...)
	out.Notifications = append([]models.Notification(nil), d.Notifications...)
	out.Transactions = append([]models.Transaction(nil), d.Transactions...)
	out.Team = append([]models.TeamMember(nil), d.Team...)
	out.Documents = append([]models.Document(nil), d.Documents...)
	return out
}

func (s *MemoryStore) GetOrganizer(ctx context.Context) (models.Organizer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Organizer.ID == "" {
		return models.Organizer{}, ErrNotFound
	}
	return s.data.Organizer, nil
}

func (s *MemoryStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := cloneDemo(DemoData{Events: s.data.Events}).Events
	sort.SliceStable(events, func(i, j int) bool { return events[i].StartsAt.Before(events[j].StartsAt) })
	return events, nil
}

func (s *MemoryStore) GetEvent(ctx context.Context, id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.data.Events {
		if e.ID == id {
			e.TicketTypes = append([]models.TicketType(nil), e.TicketTypes...)
			return e, nil
		}
	}
	return models.Event{}, ErrNotFound
}

func (s *MemoryStore) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []models.Order
	for _, o := range s.data.Orders {
		if filter.EventID != "" && o.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		orders = append(orders, o)
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if filter.Limit > 0 && len(orders) > filter.Limit {
		orders = orders[:filter.Limit]
	}
	return orders, nil
}

func (s *MemoryStore) ListTickets(ctx context.Context, eventID string) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tickets []models.Ticket
	for _, t := range s.data.Tickets {
		if eventID == "" || t.EventID == eventID {
			tickets = append(tickets, t)
		}
	}
	return tickets, nil
}

func (s *MemoryStore) CheckInTicket(ctx context.Context, code string, at time.Time) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.data.Tickets {
		if !strings.EqualFold(t.Code, code) {
			continue
		}
		if t.CheckedIn() {
			return t, ErrAlreadyCheckedIn
		}
		stamp := at
		s.data.Tickets[i].CheckedInAt = &stamp
		return s.data.Tickets[i], nil
	}
	return models.Ticket{}, ErrNotFound
}

func (s *MemoryStore) ListCheckIns(ctx context.Context, limit int) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tickets []models.Ticket
	for _, t := range s.data.Tickets {
		if t.CheckedIn() {
			tickets = append(tickets, t)
		}
	}
	sort.SliceStable(tickets, func(i, j int) bool { return tickets[i].CheckedInAt.After(*tickets[j].CheckedInAt) })
	if limit > 0 && len(tickets) > limit {
		tickets = tickets[:limit]
	}
	return tickets, nil
}

func (s *MemoryStore) ListInvitations(ctx context.Context, eventID string) ([]models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var invitations []models.Invitation
	for _, inv := range s.data.Invitations {
		if eventID == "" || inv.EventID == eventID {
			invitations = append(invitations, inv)
		}
	}
	sort.SliceStable(invitations, func(i, j int) bool { return invitations[i].CreatedAt.After(invitations[j].CreatedAt) })
	return invitations, nil
}

func (s *MemoryStore) GetInvitation(ctx context.Context, id string) (models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.data.Invitations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invitation{}, ErrNotFound
}

func (s *MemoryStore) CreateInvitation(ctx context.Context, inv models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.Invitations {
		if existing.ID == inv.ID {
			return ErrConflict
		}
	}
	s.data.Invitations = append(s.data.Invitations, inv)
	return nil
}

func (s *MemoryStore) UpdateInvitationStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Invitations {
		if s.data.Invitations[i].ID == id {
			s.data.Invitations[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteInvitation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, inv := range s.data.Invitations {
		if inv.ID == id {
			s.data.Invitations = append(s.data.Invitations[:i], s.data.Invitations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notifications := append([]models.Notification(nil), s.data.Notifications...)
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *MemoryStore) CreateNotification(ctx context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Notifications = append(s.data.Notifications, n)
	return nil
}

func (s *MemoryStore) MarkNotificationsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Notifications {
		s.data.Notifications[i].Read = true
	}
	return nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	transactions := append([]models.Transaction(nil), s.data.Transactions...)
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

func (s *MemoryStore) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Transactions = append(s.data.Transactions, tx)
	return nil
}

func (s *MemoryStore) GetPayoutAccount(ctx context.Context) (models.PayoutAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.PayoutAccount.IBAN == "" {
		return models.PayoutAccount{}, ErrNotFound
	}
	return s.data.PayoutAccount, nil
}

func (s *MemoryStore) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := append([]models.TeamMember(nil), s.data.Team...)
	sort.SliceStable(members, func(i, j int) bool { return members[i].InvitedAt.Before(members[j].InvitedAt) })
	return members, nil
}

func (s *MemoryStore) GetTeamMemberByEmail(ctx context.Context, email string) (models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.data.Team {
		if strings.EqualFold(m.Email, email) {
			return m, nil
		}
	}
	return models.TeamMember{}, ErrNotFound
}

func (s *MemoryStore) CreateTeamMember(ctx context.Context, m models.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.Team {
		if strings.EqualFold(existing.Email, m.Email) {
			return ErrConflict
		}
	}
	s.data.Team = append(s.data.Team, m)
	return nil
}

func (s *MemoryStore) ActivateTeamMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Team {
		if s.data.Team[i].ID == id {
			s.data.Team[i].Status = models.MemberStatusActive
			s.data.Team[i].JoinCode = ""
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteTeamMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.data.Team {
		if m.ID != id {
			continue
		}
		if m.Role == models.RoleOwner {
			return ErrOwnerRemoval
		}
		s.data.Team = append(s.data.Team[:i], s.data.Team[i+1:]...)
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStore) ListDocuments(ctx context.Context) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	documents := append([]models.Document(nil), s.data.Documents...)
	sort.SliceStable(documents, func(i, j int) bool { return documents[i].CreatedAt.After(documents[j].CreatedAt) })
	return documents, nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, id string) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.data.Documents {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Document{}, ErrNotFound
}

func (s *MemoryStore) CreateDocument(ctx context.Context, d models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Documents = append(s.data.Documents, d)
	return nil
}
