package domain

import "time"

// User represents a registered account.
//
// PasswordHash is write-only from the API's perspective: it never appears in
// a response body, which the json tag enforces at the serialization boundary.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the decoded token payload the auth gate attaches to a request.
type Identity struct {
	UserID string
	Email  string
}
