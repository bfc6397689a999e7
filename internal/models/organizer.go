package models

type Organizer struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Currency string `json:"currency" yaml:"currency"`
	Brand    string `json:"brand" yaml:"brand"`
}
