package models

import "time"

const (
	EventContactSubmitted = "contact.submitted"
	EventBookingCreated   = "booking.created"
)

// ContactEvent is published to the contact topic for every accepted
// contact form submission.
type ContactEvent struct {
	Event       string    `json:"event"`
	ReferenceID string    `json:"reference_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Plan        string    `json:"plan,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// BookingEvent is published to the contact topic for every confirmed
// consultation booking.
type BookingEvent struct {
	Event        string    `json:"event"`
	ReferenceID  string    `json:"reference_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Service      string    `json:"service"`
	ServiceLabel string    `json:"service_label"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Timestamp    time.Time `json:"timestamp"`
}

// Acknowledgement is returned for accepted contact and booking requests.
type Acknowledgement struct {
	ReferenceID string `json:"reference_id"`
	Message     string `json:"message"`
}
