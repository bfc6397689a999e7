package storage

import (
	"context"
	"testing"
	"time"

	"organizer-portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Store = (*MemoryStore)(nil)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	seed, err := LoadDemo(testNow)
	require.NoError(t, err)
	return NewMemoryStore(seed)
}

func TestLoadDemo(t *testing.T) {
	data, err := LoadDemo(testNow)
	require.NoError(t, err)

	assert.Equal(t, "org_northlight", data.Organizer.ID)
	assert.Equal(t, "EUR", data.Organizer.Currency)
	require.Len(t, data.Events, 5)

	for i := 1; i < len(data.Events); i++ {
		assert.False(t, data.Events[i].StartsAt.Before(data.Events[i-1].StartsAt), "events sorted by start")
	}
	for _, e := range data.Events {
		for _, tt := range e.TicketTypes {
			assert.Equal(t, e.ID, tt.EventID)
		}
	}

	// one ticket per paid seat, none for pending or refunded orders
	seats := 0
	for _, o := range data.Orders {
		if o.Status == models.OrderStatusPaid {
			seats += o.Quantity
		}
	}
	assert.Len(t, data.Tickets, seats)

	checkedIn := 0
	for _, tk := range data.Tickets {
		if tk.CheckedIn() {
			checkedIn++
		}
	}
	assert.Equal(t, 6, checkedIn)
}

func TestParseDemo_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "bad yaml", raw: "events: ["},
		{name: "bad starts_in", raw: "events:\n  - id: e1\n    starts_in: tomorrow\n"},
		{name: "bad ago", raw: "orders:\n  - id: o1\n    ago: yesterday\n"},
		{name: "unknown check-in", raw: "check_ins:\n  - code: TX9-1\n    ago: 1h\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDemo([]byte(tt.raw), testNow)
			assert.Error(t, err)
		})
	}
}

func TestTicketsForOrder(t *testing.T) {
	tickets := TicketsForOrder(models.Order{ID: "ord_1042", EventID: "evt_1", BuyerName: "Mara", TicketType: "Day Pass", Quantity: 2})
	require.Len(t, tickets, 2)
	assert.Equal(t, "TX1042-1", tickets[0].Code)
	assert.Equal(t, "TX1042-2", tickets[1].Code)
	assert.Equal(t, "evt_1", tickets[1].EventID)
}

func TestMemoryStore_ListOrders(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tests := []struct {
		name   string
		filter models.OrderFilter
		check  func(t *testing.T, orders []models.Order)
	}{
		{
			name:   "limit keeps newest",
			filter: models.OrderFilter{Limit: 3},
			check: func(t *testing.T, orders []models.Order) {
				require.Len(t, orders, 3)
				assert.Equal(t, "ord_1042", orders[0].ID)
				assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
			},
		},
		{
			name:   "by event",
			filter: models.OrderFilter{EventID: "evt_jazz_cellar"},
			check: func(t *testing.T, orders []models.Order) {
				require.Len(t, orders, 3)
				for _, o := range orders {
					assert.Equal(t, "evt_jazz_cellar", o.EventID)
				}
			},
		},
		{
			name:   "by status",
			filter: models.OrderFilter{Status: models.OrderStatusRefunded},
			check: func(t *testing.T, orders []models.Order) {
				require.Len(t, orders, 1)
				assert.Equal(t, "ord_1036", orders[0].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := s.ListOrders(ctx, tt.filter)
			require.NoError(t, err)
			tt.check(t, orders)
		})
	}
}

func TestMemoryStore_CheckInTicket(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	at := testNow.Add(time.Minute)

	ticket, err := s.CheckInTicket(ctx, "tx1042-1", at)
	require.NoError(t, err)
	require.NotNil(t, ticket.CheckedInAt)
	assert.True(t, ticket.CheckedInAt.Equal(at))

	again, err := s.CheckInTicket(ctx, "TX1042-1", at.Add(time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.True(t, again.CheckedInAt.Equal(at), "first check-in time is kept")

	_, err = s.CheckInTicket(ctx, "NOPE-1", at)
	assert.ErrorIs(t, err, ErrNotFound)

	recent, err := s.ListCheckIns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "TX1042-1", recent[0].Code)
}

func TestMemoryStore_Invitations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	inv := models.Invitation{ID: "inv_new", EventID: "evt_synth_summit", Name: "Kai", Email: "kai@example.com", Status: models.InvitationStatusSent, CreatedAt: testNow}
	require.NoError(t, s.CreateInvitation(ctx, inv))
	assert.ErrorIs(t, s.CreateInvitation(ctx, inv), ErrConflict)

	list, err := s.ListInvitations(ctx, "evt_synth_summit")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "inv_new", list[0].ID)

	require.NoError(t, s.UpdateInvitationStatus(ctx, "inv_new", models.InvitationStatusAccepted))
	got, err := s.GetInvitation(ctx, "inv_new")
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusAccepted, got.Status)

	require.NoError(t, s.DeleteInvitation(ctx, "inv_new"))
	_, err = s.GetInvitation(ctx, "inv_new")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteInvitation(ctx, "inv_new"), ErrNotFound)
}

func TestMemoryStore_Team(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.CreateTeamMember(ctx, models.TeamMember{ID: "mem_dup", Email: "LENA@northlight.example"})
	assert.ErrorIs(t, err, ErrConflict)

	assert.ErrorIs(t, s.DeleteTeamMember(ctx, "mem_owner"), ErrOwnerRemoval)
	require.NoError(t, s.DeleteTeamMember(ctx, "mem_box"))
	assert.ErrorIs(t, s.DeleteTeamMember(ctx, "mem_box"), ErrNotFound)

	require.NoError(t, s.ActivateTeamMember(ctx, "mem_promo"))
	m, err := s.GetTeamMemberByEmail(ctx, "elif@northlight.example")
	require.NoError(t, err)
	assert.Equal(t, models.MemberStatusActive, m.Status)
}

func TestMemoryStore_Notifications(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.MarkNotificationsRead(ctx))
	list, err := s.ListNotifications(ctx)
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.Read)
	}
}

func TestMemoryStore_IsolatedFromSeed(t *testing.T) {
	seed, err := LoadDemo(testNow)
	require.NoError(t, err)
	a := NewMemoryStore(seed)
	b := NewMemoryStore(seed)

	_, err = a.CheckInTicket(context.Background(), "TX1042-1", testNow)
	require.NoError(t, err)

	tickets, err := b.ListTickets(context.Background(), "evt_harbour_lights")
	require.NoError(t, err)
	found := false
	for _, tk := range tickets {
		if tk.Code == "TX1042-1" {
			found = true
			assert.False(t, tk.CheckedIn())
		}
	}
	assert.True(t, found)
}
