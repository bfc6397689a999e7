package models

import "time"

const (
	DocumentAttendees = "attendees"
	DocumentSales     = "sales"
	DocumentCheckIns  = "checkins"
)

type Document struct {
	ID        string    `json:"id" yaml:"id"`
	EventID   string    `json:"event_id" yaml:"event_id"`
	Kind      string    `json:"kind" yaml:"kind"`
	Name      string    `json:"name" yaml:"name"`
	Rows      int       `json:"rows" yaml:"rows"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

type DocumentRequest struct {
	EventID string `form:"event_id" binding:"required"`
	Kind    string `form:"kind" binding:"required,oneof=attendees sales checkins"`
}
