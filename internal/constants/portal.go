package constants

import "time"

const (
	RecentOrdersLimit   = 5
	EventOrdersLimit    = 10
	RecentCheckInsLimit = 10
	SalesByDayWindow    = 14

	InvitationTokenTTL  = 30 * 24 * time.Hour
	MaxInvitationGuests = 10

	JoinCodeLength = 8
)
