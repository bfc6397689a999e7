package models

import "time"

const (
	InvitationStatusSent     = "sent"
	InvitationStatusOpened   = "opened"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
)

type Invitation struct {
	ID        string    `json:"id" yaml:"id"`
	EventID   string    `json:"event_id" yaml:"event_id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Guests    int       `json:"guests" yaml:"guests"`
	Status    string    `json:"status" yaml:"status"`
	Message   string    `json:"message,omitempty" yaml:"message"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

type InvitationRequest struct {
	EventID string `form:"event_id" binding:"required"`
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Guests  int    `form:"guests" binding:"min=0,max=10"`
	Message string `form:"message" binding:"max=500"`
}
