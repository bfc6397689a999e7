package models

import "time"

type Ticket struct {
	Code        string     `json:"code" yaml:"code"`
	OrderID     string     `json:"order_id" yaml:"order_id"`
	EventID     string     `json:"event_id" yaml:"event_id"`
	HolderName  string     `json:"holder_name" yaml:"holder_name"`
	TicketType  string     `json:"ticket_type" yaml:"ticket_type"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty" yaml:"checked_in_at"`
}

func (t Ticket) CheckedIn() bool {
	return t.CheckedInAt != nil
}

const (
	ScanValid            = "valid"
	ScanAlreadyCheckedIn = "already_checked_in"
	ScanUnknown          = "unknown"
)

type ScanResult struct {
	Outcome string  `json:"outcome"`
	Code    string  `json:"code"`
	Ticket  *Ticket `json:"ticket,omitempty"`
	Event   *Event  `json:"event,omitempty"`
}
