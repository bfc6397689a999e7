// Package stats turns the display records into the numbers the dashboard
// pages show. Everything here is pure.
package stats

import (
	"sort"
	"time"

	"organizer-portal/internal/format"
	"organizer-portal/internal/models"
)

type EventSummary struct {
	Event          models.Event
	Sold           int
	Capacity       int
	Remaining      int
	FillPercent    int
	GrossCents     int64
	AvgOrderCents  int64
	CheckedIn      int
	Issued         int
	CheckInPercent int
}

type TicketTypeRow struct {
	models.TicketType
	RevenueCents int64
	FillPercent  int
}

type DayTotal struct {
	Day          time.Time
	Tickets      int
	AmountCents  int64
	WidthPercent int
}

type DashboardTotals struct {
	TicketsSold    int
	GrossCents     int64
	UpcomingEvents int
	UnreadCount    int
}

// Summarize computes the headline numbers for one event. orders and tickets
// may contain records of other events; they are filtered here.
func Summarize(event models.Event, orders []models.Order, tickets []models.Ticket) EventSummary {
	s := EventSummary{Event: event, Capacity: event.Capacity}
	for _, tt := range event.TicketTypes {
		s.Sold += tt.Sold
		s.GrossCents += int64(tt.Sold) * tt.PriceCents
	}
	if s.Capacity == 0 {
		for _, tt := range event.TicketTypes {
			s.Capacity += tt.Quantity
		}
	}
	s.Remaining = s.Capacity - s.Sold
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	s.FillPercent = format.Percent(s.Sold, s.Capacity)

	var paidOrders int
	var paidCents int64
	for _, o := range orders {
		if o.EventID != event.ID || o.Status != models.OrderStatusPaid {
			continue
		}
		paidOrders++
		paidCents += o.AmountCents
	}
	if paidOrders > 0 {
		s.AvgOrderCents = paidCents / int64(paidOrders)
	}

	for _, t := range tickets {
		if t.EventID != event.ID {
			continue
		}
		s.Issued++
		if t.CheckedIn() {
			s.CheckedIn++
		}
	}
	s.CheckInPercent = format.Percent(s.CheckedIn, s.Issued)
	return s
}

func TicketTypeRows(event models.Event) []TicketTypeRow {
	rows := make([]TicketTypeRow, 0, len(event.TicketTypes))
	for _, tt := range event.TicketTypes {
		rows = append(rows, TicketTypeRow{
			TicketType:   tt,
			RevenueCents: int64(tt.Sold) * tt.PriceCents,
			FillPercent:  format.Percent(tt.Sold, tt.Quantity),
		})
	}
	return rows
}

// SalesByDay groups non-refunded orders by calendar day (UTC), keeping the
// most recent `window` days that have orders, oldest first. WidthPercent is
// relative to the best day so the template can draw bars.
func SalesByDay(orders []models.Order, window int) []DayTotal {
	byDay := make(map[time.Time]*DayTotal)
	for _, o := range orders {
		if o.Status == models.OrderStatusRefunded {
			continue
		}
		t := o.CreatedAt.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		total, ok := byDay[day]
		if !ok {
			total = &DayTotal{Day: day}
			byDay[day] = total
		}
		total.Tickets += o.Quantity
		total.AmountCents += o.AmountCents
	}

	days := make([]DayTotal, 0, len(byDay))
	for _, total := range byDay {
		days = append(days, *total)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
	if window > 0 && len(days) > window {
		days = days[len(days)-window:]
	}

	var best int64
	for _, d := range days {
		if d.AmountCents > best {
			best = d.AmountCents
		}
	}
	for i := range days {
		if best > 0 {
			days[i].WidthPercent = int(days[i].AmountCents * 100 / best)
		}
	}
	return days
}

func Dashboard(events []models.Event, notifications []models.Notification, now time.Time) DashboardTotals {
	var totals DashboardTotals
	for _, e := range events {
		for _, tt := range e.TicketTypes {
			totals.TicketsSold += tt.Sold
			totals.GrossCents += int64(tt.Sold) * tt.PriceCents
		}
		if e.StartsAt.After(now) && e.Status != models.EventStatusCancelled {
			totals.UpcomingEvents++
		}
	}
	totals.UnreadCount = UnreadCount(notifications)
	return totals
}

func UnreadCount(notifications []models.Notification) int {
	n := 0
	for _, notification := range notifications {
		if !notification.Read {
			n++
		}
	}
	return n
}
