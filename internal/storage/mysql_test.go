package storage

// go test -v ./internal/storage/... (needs Docker; skipped with -short)

import (
	"context"
	"testing"
	"time"

	"organizer-portal/internal/crypto"
	"organizer-portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

var _ Store = (*MySQLStore)(nil)

func startMySQL(t *testing.T) Config {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MySQL integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.4",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "test_password",
			"MYSQL_DATABASE":      "portal_test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("ready for connections").WithOccurrence(2),
			wait.ForListeningPort("3306/tcp"),
		).WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306")
	require.NoError(t, err)

	return Config{Host: host, Port: port.Port(), User: "root", Password: "test_password", DBName: "portal_test"}
}

func TestMySQLStore(t *testing.T) {
	cfg := startMySQL(t)
	ctx := context.Background()

	require.NoError(t, EnsureDatabase(cfg))

	sqlDB, err := NewDB(cfg)
	require.NoError(t, err)
	defer sqlDB.Close()

	logger := zap.NewNop()
	require.NoError(t, RunMigrations(sqlDB, logger))
	// second run is a no-op
	require.NoError(t, RunMigrations(sqlDB, logger))

	cipher, err := crypto.NewFieldCipher("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	store := NewMySQLStore(sqlDB, cipher)

	seed, err := LoadDemo(testNow)
	require.NoError(t, err)
	require.NoError(t, store.SeedDemo(ctx, seed))
	require.NoError(t, store.SeedDemo(ctx, seed), "seeding twice keeps the first seed")

	t.Run("organizer and payout account", func(t *testing.T) {
		org, err := store.GetOrganizer(ctx)
		require.NoError(t, err)
		assert.Equal(t, seed.Organizer, org)

		acct, err := store.GetPayoutAccount(ctx)
		require.NoError(t, err)
		assert.Equal(t, seed.PayoutAccount.IBAN, acct.IBAN)

		var raw string
		require.NoError(t, sqlDB.QueryRow("SELECT iban_encrypted FROM payout_accounts").Scan(&raw))
		assert.NotContains(t, raw, "3704")
	})

	t.Run("events with ticket types", func(t *testing.T) {
		events, err := store.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, len(seed.Events))
		for i, e := range events {
			assert.Equal(t, seed.Events[i].ID, e.ID)
			assert.Len(t, e.TicketTypes, len(seed.Events[i].TicketTypes))
		}

		e, err := store.GetEvent(ctx, "evt_synth_summit")
		require.NoError(t, err)
		require.Len(t, e.TicketTypes, 3)
		assert.Equal(t, "Early Bird", e.TicketTypes[0].Name)

		_, err = store.GetEvent(ctx, "evt_missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("orders", func(t *testing.T) {
		orders, err := store.ListOrders(ctx, models.OrderFilter{EventID: "evt_jazz_cellar", Limit: 2})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "ord_1038", orders[0].ID)
	})

	t.Run("check in once", func(t *testing.T) {
		at := testNow.Add(time.Minute)
		ticket, err := store.CheckInTicket(ctx, "TX1041-1", at)
		require.NoError(t, err)
		require.NotNil(t, ticket.CheckedInAt)

		_, err = store.CheckInTicket(ctx, "TX1041-1", at.Add(time.Hour))
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

		_, err = store.CheckInTicket(ctx, "TX0000-9", at)
		assert.ErrorIs(t, err, ErrNotFound)

		recent, err := store.ListCheckIns(ctx, 1)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "TX1041-1", recent[0].Code)
	})

	t.Run("invitations", func(t *testing.T) {
		inv := models.Invitation{ID: "inv_mysql", EventID: "evt_synth_summit", Name: "Kai", Email: "kai@example.com", Status: models.InvitationStatusSent, CreatedAt: testNow}
		require.NoError(t, store.CreateInvitation(ctx, inv))
		assert.ErrorIs(t, store.CreateInvitation(ctx, inv), ErrConflict)
		require.NoError(t, store.UpdateInvitationStatus(ctx, "inv_mysql", models.InvitationStatusSent))
		require.NoError(t, store.DeleteInvitation(ctx, "inv_mysql"))
		assert.ErrorIs(t, store.DeleteInvitation(ctx, "inv_mysql"), ErrNotFound)
	})

	t.Run("team", func(t *testing.T) {
		err := store.CreateTeamMember(ctx, models.TeamMember{ID: "mem_dup", Name: "Dup", Email: "lena@northlight.example", Role: models.RoleAdmin, Status: models.MemberStatusInvited, InvitedAt: testNow})
		assert.ErrorIs(t, err, ErrConflict)
		assert.ErrorIs(t, store.DeleteTeamMember(ctx, "mem_owner"), ErrOwnerRemoval)
		require.NoError(t, store.ActivateTeamMember(ctx, "mem_promo"))
		require.NoError(t, store.ActivateTeamMember(ctx, "mem_promo"))
	})
}
