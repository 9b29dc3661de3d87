package models

import "time"

// User represents a registered Finsight user.
type User struct {
	ID           string    `json:"id" badgerhold:"key"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
