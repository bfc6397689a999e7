package models

import "time"

const (
	EventStatusDraft     = "draft"
	EventStatusOnSale    = "on_sale"
	EventStatusSoldOut   = "sold_out"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Venue       string       `json:"venue" yaml:"venue"`
	City        string       `json:"city" yaml:"city"`
	StartsAt    time.Time    `json:"starts_at" yaml:"starts_at"`
	Capacity    int          `json:"capacity" yaml:"capacity"`
	Status      string       `json:"status" yaml:"status"`
	ImageURL    string       `json:"image_url,omitempty" yaml:"image_url"`
	TicketURL   string       `json:"ticket_url,omitempty" yaml:"ticket_url"`
	TicketTypes []TicketType `json:"ticket_types" yaml:"ticket_types"`
}

type TicketType struct {
	ID         string `json:"id" yaml:"id"`
	EventID    string `json:"event_id" yaml:"-"`
	Name       string `json:"name" yaml:"name"`
	PriceCents int64  `json:"price_cents" yaml:"price_cents"`
	Quantity   int    `json:"quantity" yaml:"quantity"`
	Sold       int    `json:"sold" yaml:"sold"`
}

// Publishable reports whether the event may appear on public surfaces.
func (e Event) Publishable() bool {
	return e.Status != EventStatusDraft
}

// LowestPrice returns the cheapest ticket type price, or 0 when the event
// has no ticket types.
func (e Event) LowestPrice() int64 {
	var lowest int64
	for i, tt := range e.TicketTypes {
		if i == 0 || tt.PriceCents < lowest {
			lowest = tt.PriceCents
		}
	}
	return lowest
}
