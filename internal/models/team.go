package models

import "time"

const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleScanner = "scanner"

	MemberStatusActive  = "active"
	MemberStatusInvited = "invited"
)

type TeamMember struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Role      string    `json:"role" yaml:"role"`
	Status    string    `json:"status" yaml:"status"`
	JoinCode  string    `json:"-" yaml:"-"`
	InvitedAt time.Time `json:"invited_at" yaml:"invited_at"`
}

type TeamInvite struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
	Role  string `form:"role" binding:"required,oneof=admin manager scanner"`
}

type TeamJoin struct {
	Email string `form:"email" binding:"required,email"`
	Code  string `form:"code" binding:"required"`
}
