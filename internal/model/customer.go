package model

import "time"

// Customer is read-only for the notification flow: both contact fields are
// optional, and a missing one simply disables that channel.
type Customer struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
