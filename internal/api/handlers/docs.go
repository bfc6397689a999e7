package handlers

// ErrorResponse is the body of every failed JSON request.
type ErrorResponse struct {
	Error string `json:"error" example:"Event not found"`
}
