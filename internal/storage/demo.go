package storage

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"organizer-portal/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed demo/portal.yaml
var demoYAML []byte

// DemoData is the resolved demo account every store starts from.
type DemoData struct {
	Organizer     models.Organizer
	PayoutAccount models.PayoutAccount
	Events        []models.Event
	Orders        []models.Order
	Tickets       []models.Ticket
	Invitations   []models.Invitation
	Notifications []models.Notification
	Transactions  []models.Transaction
	Team          []models.TeamMember
	Documents     []models.Document
}

// offsets in the seed file are durations relative to "now"
type demoFile struct {
	Organizer     models.Organizer     `yaml:"organizer"`
	PayoutAccount models.PayoutAccount `yaml:"payout_account"`
	Events        []struct {
		models.Event `yaml:",inline"`
		StartsIn     string `yaml:"starts_in"`
	} `yaml:"events"`
	Orders []struct {
		models.Order `yaml:",inline"`
		Ago          string `yaml:"ago"`
	} `yaml:"orders"`
	CheckIns []struct {
		Code string `yaml:"code"`
		Ago  string `yaml:"ago"`
	} `yaml:"check_ins"`
	Invitations []struct {
		models.Invitation `yaml:",inline"`
		Ago               string `yaml:"ago"`
	} `yaml:"invitations"`
	Notifications []struct {
		models.Notification `yaml:",inline"`
		Ago                 string `yaml:"ago"`
	} `yaml:"notifications"`
	Transactions []struct {
		models.Transaction `yaml:",inline"`
		Ago                string `yaml:"ago"`
	} `yaml:"transactions"`
	Team []struct {
		models.TeamMember `yaml:",inline"`
		Ago               string `yaml:"ago"`
	} `yaml:"team"`
	Documents []struct {
		models.Document `yaml:",inline"`
		Ago             string `yaml:"ago"`
	} `yaml:"documents"`
}

// LoadDemo parses the embedded seed file, resolving relative times against now.
func LoadDemo(now time.Time) (*DemoData, error) {
	return ParseDemo(demoYAML, now)
}

func ParseDemo(raw []byte, now time.Time) (*DemoData, error) {
	var f demoFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("error parsing demo data: %w", err)
	}

	ago := func(offset string) (time.Time, error) {
		if offset == "" {
			return now, nil
		}
		d, err := time.ParseDuration(offset)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid offset %q: %w", offset, err)
		}
		return now.Add(-d), nil
	}

	data := &DemoData{
		Organizer:     f.Organizer,
		PayoutAccount: f.PayoutAccount,
	}

	for _, e := range f.Events {
		d, err := time.ParseDuration(e.StartsIn)
		if err != nil {
			return nil, fmt.Errorf("event %s: invalid starts_in %q: %w", e.ID, e.StartsIn, err)
		}
		event := e.Event
		event.StartsAt = now.Add(d).Truncate(time.Hour)
		for i := range event.TicketTypes {
			event.TicketTypes[i].EventID = event.ID
		}
		data.Events = append(data.Events, event)
	}

	for _, o := range f.Orders {
		at, err := ago(o.Ago)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", o.ID, err)
		}
		order := o.Order
		order.CreatedAt = at
		data.Orders = append(data.Orders, order)
		if order.Status == models.OrderStatusPaid {
			data.Tickets = append(data.Tickets, TicketsForOrder(order)...)
		}
	}

	checkedIn := make(map[string]time.Time, len(f.CheckIns))
	for _, ci := range f.CheckIns {
		at, err := ago(ci.Ago)
		if err != nil {
			return nil, fmt.Errorf("check-in %s: %w", ci.Code, err)
		}
		checkedIn[ci.Code] = at
	}
	for i := range data.Tickets {
		if at, ok := checkedIn[data.Tickets[i].Code]; ok {
			data.Tickets[i].CheckedInAt = &at
			delete(checkedIn, data.Tickets[i].Code)
		}
	}
	for code := range checkedIn {
		return nil, fmt.Errorf("check-in references unknown ticket %s", code)
	}

	for _, inv := range f.Invitations {
		at, err := ago(inv.Ago)
		if err != nil {
			return nil, fmt.Errorf("invitation %s: %w", inv.ID, err)
		}
		invitation := inv.Invitation
		invitation.CreatedAt = at
		data.Invitations = append(data.Invitations, invitation)
	}
	for _, n := range f.Notifications {
		at, err := ago(n.Ago)
		if err != nil {
			return nil, fmt.Errorf("notification %s: %w", n.ID, err)
		}
		notification := n.Notification
		notification.CreatedAt = at
		data.Notifications = append(data.Notifications, notification)
	}
	for _, t := range f.Transactions {
		at, err := ago(t.Ago)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		tx := t.Transaction
		tx.CreatedAt = at
		data.Transactions = append(data.Transactions, tx)
	}
	for _, m := range f.Team {
		at, err := ago(m.Ago)
		if err != nil {
			return nil, fmt.Errorf("team member %s: %w", m.ID, err)
		}
		member := m.TeamMember
		member.InvitedAt = at
		data.Team = append(data.Team, member)
	}
	for _, d := range f.Documents {
		at, err := ago(d.Ago)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", d.ID, err)
		}
		doc := d.Document
		doc.CreatedAt = at
		data.Documents = append(data.Documents, doc)
	}

	sort.Slice(data.Events, func(i, j int) bool { return data.Events[i].StartsAt.Before(data.Events[j].StartsAt) })

	return data, nil
}

// TicketsForOrder issues one ticket per seat, coded from the order number:
// order ord_1042 with two seats yields TX1042-1 and TX1042-2.
func TicketsForOrder(order models.Order) []models.Ticket {
	number := strings.ToUpper(order.ID)
	if _, rest, ok := strings.Cut(number, "_"); ok {
		number = rest
	}
	tickets := make([]models.Ticket, 0, order.Quantity)
	for i := 1; i <= order.Quantity; i++ {
		tickets = append(tickets, models.Ticket{
			Code:       fmt.Sprintf("TX%s-%d", number, i),
			OrderID:    order.ID,
			EventID:    order.EventID,
			HolderName: order.BuyerName,
			TicketType: order.TicketType,
		})
	}
	return tickets
}
