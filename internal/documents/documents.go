// Package documents builds the CSV exports offered on the documents page.
// Files are produced from current data every time they are downloaded; only
// the Document record is stored.
package documents

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"organizer-portal/internal/models"
)

// Source is the subset of storage.Store the exports read.
type Source interface {
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	ListTickets(ctx context.Context, eventID string) ([]models.Ticket, error)
}

var kindTitles = map[string]string{
	models.DocumentAttendees: "attendee list",
	models.DocumentSales:     "sales report",
	models.DocumentCheckIns:  "check-ins",
}

// Title is the display name of a document, e.g. "Harbour Lights – sales report".
func Title(event models.Event, kind string) string {
	return fmt.Sprintf("%s – %s", event.Name, kindTitles[kind])
}

// FileName is the download name, e.g. "evt_harbour_lights-sales.csv".
func FileName(doc models.Document) string {
	return fmt.Sprintf("%s-%s.csv", doc.EventID, doc.Kind)
}

// Build returns the header and data rows of one export.
func Build(ctx context.Context, src Source, eventID, kind string) ([][]string, error) {
	switch kind {
	case models.DocumentAttendees:
		tickets, err := src.ListTickets(ctx, eventID)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"ticket_code", "holder", "ticket_type", "order_id", "checked_in"}}
		for _, t := range tickets {
			rows = append(rows, []string{t.Code, t.HolderName, t.TicketType, t.OrderID, yesNo(t.CheckedIn())})
		}
		return rows, nil

	case models.DocumentSales:
		orders, err := src.ListOrders(ctx, models.OrderFilter{EventID: eventID})
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"order_id", "created_at", "buyer", "email", "ticket_type", "quantity", "amount", "status"}}
		for _, o := range orders {
			rows = append(rows, []string{
				o.ID,
				o.CreatedAt.UTC().Format(time.RFC3339),
				o.BuyerName,
				o.BuyerEmail,
				o.TicketType,
				strconv.Itoa(o.Quantity),
				decimal(o.AmountCents),
				o.Status,
			})
		}
		return rows, nil

	case models.DocumentCheckIns:
		tickets, err := src.ListTickets(ctx, eventID)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"ticket_code", "holder", "ticket_type", "checked_in_at"}}
		for _, t := range tickets {
			if !t.CheckedIn() {
				continue
			}
			rows = append(rows, []string{t.Code, t.HolderName, t.TicketType, t.CheckedInAt.UTC().Format(time.RFC3339)})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unknown document kind %q", kind)
}

// WriteCSV writes rows as RFC 4180 CSV.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// amounts in exports are plain decimals so spreadsheets can sum them
func decimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
