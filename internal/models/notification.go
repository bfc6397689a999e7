package models

import "time"

const (
	NotificationOrder  = "order"
	NotificationPayout = "payout"
	NotificationTeam   = "team"
	NotificationSystem = "system"
)

type Notification struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      string    `json:"kind" yaml:"kind"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body" yaml:"body"`
	Read      bool      `json:"read" yaml:"read"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
