package domain

import "time"

// User is an account that can authenticate against the service.
// Admins manage the catalog and grants; everyone else only sees
// files they were explicitly granted.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
