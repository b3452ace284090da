package model

import "time"

// ContactSubmission represents a message submitted via the contact form.
// Name, Email, Subject and Message are stored verbatim; callers trim and
// validate them before they reach the store.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
