package models

import "time"

// User is keyed by the identity provider's uid.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserDashboard struct {
	User
	Progress Progress `json:"progress"`
}
