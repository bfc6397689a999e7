package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"organizer-portal/internal/crypto"
	"organizer-portal/internal/models"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

// MySQLStore keeps the portal data in MySQL. The payout IBAN is stored
// encrypted with the configured field cipher.
type MySQLStore struct {
	db     *sql.DB
	cipher *crypto.FieldCipher
}

func NewMySQLStore(db *sql.DB, cipher *crypto.FieldCipher) *MySQLStore {
	return &MySQLStore{db: db, cipher: cipher}
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// mustAffect relies on clientFoundRows in the DSN, so matched rows count
// even when the update leaves them unchanged.
func mustAffect(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedDemo loads the demo account into an empty database. A database that
// already has an organizer is left untouched.
func (s *MySQLStore) SeedDemo(ctx context.Context, data *DemoData) error {
	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM organizers)").Scan(&exists); err != nil {
		return fmt.Errorf("error checking seed state: %w", err)
	}
	if exists {
		return nil
	}

	iban, err := s.cipher.Seal(data.PayoutAccount.IBAN)
	if err != nil {
		return fmt.Errorf("error encrypting iban: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	org := data.Organizer
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO organizers (id, name, email, currency, brand)
        VALUES (?, ?, ?, ?, ?)`, org.ID, org.Name, org.Email, org.Currency, org.Brand); err != nil {
		return fmt.Errorf("error seeding organizer: %w", err)
	}

	acct := data.PayoutAccount
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO payout_accounts (organizer_id, holder, bank_name, iban_encrypted, schedule)
        VALUES (?, ?, ?, ?, ?)`, org.ID, acct.Holder, acct.BankName, iban, acct.Schedule); err != nil {
		return fmt.Errorf("error seeding payout account: %w", err)
	}

	for _, e := range data.Events {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO events (id, name, venue, city, starts_at, capacity, status, image_url, ticket_url)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.Venue, e.City, e.StartsAt, e.Capacity, e.Status, e.ImageURL, e.TicketURL); err != nil {
			return fmt.Errorf("error seeding event %s: %w", e.ID, err)
		}
		for i, tt := range e.TicketTypes {
			if _, err := tx.ExecContext(ctx, `
                INSERT INTO ticket_types (id, event_id, name, price_cents, quantity, sold, position)
                VALUES (?, ?, ?, ?, ?, ?, ?)`,
				tt.ID, e.ID, tt.Name, tt.PriceCents, tt.Quantity, tt.Sold, i); err != nil {
				return fmt.Errorf("error seeding ticket type %s: %w", tt.ID, err)
			}
		}
	}

	for _, o := range data.Orders {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO orders (id, event_id, buyer_name, buyer_email, ticket_type, quantity, amount_cents, status, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.EventID, o.BuyerName, o.BuyerEmail, o.TicketType, o.Quantity, o.AmountCents, o.Status, o.CreatedAt); err != nil {
			return fmt.Errorf("error seeding order %s: %w", o.ID, err)
		}
	}

	for _, t := range data.Tickets {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO tickets (code, order_id, event_id, holder_name, ticket_type, checked_in_at)
            VALUES (?, ?, ?, ?, ?, ?)`,
			t.Code, t.OrderID, t.EventID, t.HolderName, t.TicketType, t.CheckedInAt); err != nil {
			return fmt.Errorf("error seeding ticket %s: %w", t.Code, err)
		}
	}

	for _, inv := range data.Invitations {
		if err := insertInvitation(ctx, tx, inv); err != nil {
			return fmt.Errorf("error seeding invitation %s: %w", inv.ID, err)
		}
	}
	for _, n := range data.Notifications {
		if err := insertNotification(ctx, tx, n); err != nil {
			return fmt.Errorf("error seeding notification %s: %w", n.ID, err)
		}
	}
	for _, t := range data.Transactions {
		if err := insertTransaction(ctx, tx, t); err != nil {
			return fmt.Errorf("error seeding transaction %s: %w", t.ID, err)
		}
	}
	for _, m := range data.Team {
		if err := insertTeamMember(ctx, tx, m); err != nil {
			return fmt.Errorf("error seeding team member %s: %w", m.ID, err)
		}
	}
	for _, d := range data.Documents {
		if err := insertDocument(ctx, tx, d); err != nil {
			return fmt.Errorf("error seeding document %s: %w", d.ID, err)
		}
	}

	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *MySQLStore) GetOrganizer(ctx context.Context) (models.Organizer, error) {
	var org models.Organizer
	err := s.db.QueryRowContext(ctx, `
        SELECT id, name, email, currency, brand
        FROM organizers
        LIMIT 1`).Scan(&org.ID, &org.Name, &org.Email, &org.Currency, &org.Brand)
	return org, notFound(err)
}

func (s *MySQLStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, venue, city, starts_at, capacity, status, image_url, ticket_url
        FROM events
        ORDER BY starts_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	index := make(map[string]int)
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Venue, &e.City, &e.StartsAt, &e.Capacity, &e.Status, &e.ImageURL, &e.TicketURL); err != nil {
			return nil, err
		}
		index[e.ID] = len(events)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	types, err := s.listTicketTypes(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, tt := range types {
		if i, ok := index[tt.EventID]; ok {
			events[i].TicketTypes = append(events[i].TicketTypes, tt)
		}
	}
	return events, nil
}

func (s *MySQLStore) GetEvent(ctx context.Context, id string) (models.Event, error) {
	var e models.Event
	err := s.db.QueryRowContext(ctx, `
        SELECT id, name, venue, city, starts_at, capacity, status, image_url, ticket_url
        FROM events
        WHERE id = ?`, id).Scan(&e.ID, &e.Name, &e.Venue, &e.City, &e.StartsAt, &e.Capacity, &e.Status, &e.ImageURL, &e.TicketURL)
	if err != nil {
		return models.Event{}, notFound(err)
	}
	e.TicketTypes, err = s.listTicketTypes(ctx, id)
	if err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *MySQLStore) listTicketTypes(ctx context.Context, eventID string) ([]models.TicketType, error) {
	query := `
        SELECT id, event_id, name, price_cents, quantity, sold
        FROM ticket_types`
	var args []any
	if eventID != "" {
		query += " WHERE event_id = ?"
		args = append(args, eventID)
	}
	query += " ORDER BY event_id, position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.TicketType
	for rows.Next() {
		var tt models.TicketType
		if err := rows.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.PriceCents, &tt.Quantity, &tt.Sold); err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}

func (s *MySQLStore) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	var where []string
	var args []any
	if filter.EventID != "" {
		where = append(where, "event_id = ?")
		args = append(args, filter.EventID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := `
        SELECT id, event_id, buyer_name, buyer_email, ticket_type, quantity, amount_cents, status, created_at
        FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.EventID, &o.BuyerName, &o.BuyerEmail, &o.TicketType, &o.Quantity, &o.AmountCents, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const ticketColumns = "code, order_id, event_id, holder_name, ticket_type, checked_in_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (models.Ticket, error) {
	var t models.Ticket
	var checkedIn sql.NullTime
	if err := row.Scan(&t.Code, &t.OrderID, &t.EventID, &t.HolderName, &t.TicketType, &checkedIn); err != nil {
		return models.Ticket{}, err
	}
	if checkedIn.Valid {
		at := checkedIn.Time
		t.CheckedInAt = &at
	}
	return t, nil
}

func (s *MySQLStore) queryTickets(ctx context.Context, query string, args ...any) ([]models.Ticket, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (s *MySQLStore) ListTickets(ctx context.Context, eventID string) ([]models.Ticket, error) {
	if eventID == "" {
		return s.queryTickets(ctx, "SELECT "+ticketColumns+" FROM tickets ORDER BY code")
	}
	return s.queryTickets(ctx, "SELECT "+ticketColumns+" FROM tickets WHERE event_id = ? ORDER BY code", eventID)
}

func (s *MySQLStore) getTicket(ctx context.Context, code string) (models.Ticket, error) {
	t, err := scanTicket(s.db.QueryRowContext(ctx, "SELECT "+ticketColumns+" FROM tickets WHERE code = ?", code))
	return t, notFound(err)
}

func (s *MySQLStore) CheckInTicket(ctx context.Context, code string, at time.Time) (models.Ticket, error) {
	result, err := s.db.ExecContext(ctx, `
        UPDATE tickets
        SET checked_in_at = ?
        WHERE code = ? AND checked_in_at IS NULL`, at, code)
	if err != nil {
		return models.Ticket{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Ticket{}, err
	}

	ticket, err := s.getTicket(ctx, code)
	if err != nil {
		return models.Ticket{}, err
	}
	if affected == 0 {
		return ticket, ErrAlreadyCheckedIn
	}
	return ticket, nil
}

func (s *MySQLStore) ListCheckIns(ctx context.Context, limit int) ([]models.Ticket, error) {
	query := "SELECT " + ticketColumns + " FROM tickets WHERE checked_in_at IS NOT NULL ORDER BY checked_in_at DESC"
	if limit > 0 {
		return s.queryTickets(ctx, query+" LIMIT ?", limit)
	}
	return s.queryTickets(ctx, query)
}

const invitationColumns = "id, event_id, name, email, guests, status, COALESCE(message, ''), created_at"

func scanInvitation(row rowScanner) (models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(&inv.ID, &inv.EventID, &inv.Name, &inv.Email, &inv.Guests, &inv.Status, &inv.Message, &inv.CreatedAt)
	return inv, err
}

func insertInvitation(ctx context.Context, db execer, inv models.Invitation) error {
	_, err := db.ExecContext(ctx, `
        INSERT INTO invitations (id, event_id, name, email, guests, status, message, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.EventID, inv.Name, inv.Email, inv.Guests, inv.Status, inv.Message, inv.CreatedAt)
	return err
}

func (s *MySQLStore) ListInvitations(ctx context.Context, eventID string) ([]models.Invitation, error) {
	query := "SELECT " + invitationColumns + " FROM invitations"
	var args []any
	if eventID != "" {
		query += " WHERE event_id = ?"
		args = append(args, eventID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (s *MySQLStore) GetInvitation(ctx context.Context, id string) (models.Invitation, error) {
	inv, err := scanInvitation(s.db.QueryRowContext(ctx, "SELECT "+invitationColumns+" FROM invitations WHERE id = ?", id))
	return inv, notFound(err)
}

func (s *MySQLStore) CreateInvitation(ctx context.Context, inv models.Invitation) error {
	err := insertInvitation(ctx, s.db, inv)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func (s *MySQLStore) UpdateInvitationStatus(ctx context.Context, id, status string) error {
	return mustAffect(s.db.ExecContext(ctx, "UPDATE invitations SET status = ? WHERE id = ?", status, id))
}

func (s *MySQLStore) DeleteInvitation(ctx context.Context, id string) error {
	return mustAffect(s.db.ExecContext(ctx, "DELETE FROM invitations WHERE id = ?", id))
}

func insertNotification(ctx context.Context, db execer, n models.Notification) error {
	_, err := db.ExecContext(ctx, `
        INSERT INTO notifications (id, kind, title, body, is_read, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`, n.ID, n.Kind, n.Title, n.Body, n.Read, n.CreatedAt)
	return err
}

func (s *MySQLStore) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, kind, title, COALESCE(body, ''), is_read, created_at
        FROM notifications
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *MySQLStore) CreateNotification(ctx context.Context, n models.Notification) error {
	return insertNotification(ctx, s.db, n)
}

func (s *MySQLStore) MarkNotificationsRead(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE")
	return err
}

func insertTransaction(ctx context.Context, db execer, t models.Transaction) error {
	_, err := db.ExecContext(ctx, `
        INSERT INTO transactions (id, kind, description, amount_cents, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`, t.ID, t.Kind, t.Description, t.AmountCents, t.Status, t.CreatedAt)
	return err
}

func (s *MySQLStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, kind, description, amount_cents, status, created_at
        FROM transactions
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Kind, &t.Description, &t.AmountCents, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *MySQLStore) CreateTransaction(ctx context.Context, t models.Transaction) error {
	return insertTransaction(ctx, s.db, t)
}

func (s *MySQLStore) GetPayoutAccount(ctx context.Context) (models.PayoutAccount, error) {
	var acct models.PayoutAccount
	var sealed string
	err := s.db.QueryRowContext(ctx, `
        SELECT holder, bank_name, iban_encrypted, schedule
        FROM payout_accounts
        LIMIT 1`).Scan(&acct.Holder, &acct.BankName, &sealed, &acct.Schedule)
	if err != nil {
		return models.PayoutAccount{}, notFound(err)
	}
	acct.IBAN, err = s.cipher.Open(sealed)
	if err != nil {
		return models.PayoutAccount{}, fmt.Errorf("error decrypting iban: %w", err)
	}
	return acct, nil
}

const memberColumns = "id, name, email, role, status, join_code_hash, invited_at"

func scanMember(row rowScanner) (models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.Status, &m.JoinCode, &m.InvitedAt)
	return m, err
}

func insertTeamMember(ctx context.Context, db execer, m models.TeamMember) error {
	_, err := db.ExecContext(ctx, `
        INSERT INTO team_members (id, name, email, role, status, join_code_hash, invited_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`, m.ID, m.Name, m.Email, m.Role, m.Status, m.JoinCode, m.InvitedAt)
	return err
}

func (s *MySQLStore) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+memberColumns+" FROM team_members ORDER BY invited_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *MySQLStore) GetTeamMemberByEmail(ctx context.Context, email string) (models.TeamMember, error) {
	m, err := scanMember(s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM team_members WHERE email = ?", email))
	return m, notFound(err)
}

func (s *MySQLStore) CreateTeamMember(ctx context.Context, m models.TeamMember) error {
	err := insertTeamMember(ctx, s.db, m)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func (s *MySQLStore) ActivateTeamMember(ctx context.Context, id string) error {
	return mustAffect(s.db.ExecContext(ctx, `
        UPDATE team_members
        SET status = ?, join_code_hash = ''
        WHERE id = ?`, models.MemberStatusActive, id))
}

func (s *MySQLStore) DeleteTeamMember(ctx context.Context, id string) error {
	var role string
	err := s.db.QueryRowContext(ctx, "SELECT role FROM team_members WHERE id = ?", id).Scan(&role)
	if err != nil {
		return notFound(err)
	}
	if role == models.RoleOwner {
		return ErrOwnerRemoval
	}
	return mustAffect(s.db.ExecContext(ctx, "DELETE FROM team_members WHERE id = ?", id))
}

func insertDocument(ctx context.Context, db execer, d models.Document) error {
	_, err := db.ExecContext(ctx, `
        INSERT INTO documents (id, event_id, kind, name, row_count, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`, d.ID, d.EventID, d.Kind, d.Name, d.Rows, d.CreatedAt)
	return err
}

func (s *MySQLStore) ListDocuments(ctx context.Context) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, event_id, kind, name, row_count, created_at
        FROM documents
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.EventID, &d.Kind, &d.Name, &d.Rows, &d.CreatedAt); err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

func (s *MySQLStore) GetDocument(ctx context.Context, id string) (models.Document, error) {
	var d models.Document
	err := s.db.QueryRowContext(ctx, `
        SELECT id, event_id, kind, name, row_count, created_at
        FROM documents
        WHERE id = ?`, id).Scan(&d.ID, &d.EventID, &d.Kind, &d.Name, &d.Rows, &d.CreatedAt)
	return d, notFound(err)
}

func (s *MySQLStore) CreateDocument(ctx context.Context, d models.Document) error {
	return insertDocument(ctx, s.db, d)
}
