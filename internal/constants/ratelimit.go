package constants

const (
	// Rate limits (requests per minute)
	WidgetLimit     = 120 // Public widget pages and loader script
	InviteLinkLimit = 60  // Public invitation pages
	TeamJoinLimit   = 10  // Join code attempts
)
