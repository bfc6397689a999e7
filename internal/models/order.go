package models

import "time"

const (
	OrderStatusPaid     = "paid"
	OrderStatusPending  = "pending"
	OrderStatusRefunded = "refunded"
)

type Order struct {
	ID          string    `json:"id" yaml:"id"`
	EventID     string    `json:"event_id" yaml:"event_id"`
	BuyerName   string    `json:"buyer_name" yaml:"buyer_name"`
	BuyerEmail  string    `json:"buyer_email" yaml:"buyer_email"`
	TicketType  string    `json:"ticket_type" yaml:"ticket_type"`
	Quantity    int       `json:"quantity" yaml:"quantity"`
	AmountCents int64     `json:"amount_cents" yaml:"amount_cents"`
	Status      string    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

type OrderFilter struct {
	EventID string
	Status  string
	Limit   int
}
