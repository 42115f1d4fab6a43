package domain

import "time"

// Identity is the verified subject extracted from a provider-issued ID
// token. SubjectID is the stable identifier every task is partitioned by.
type Identity struct {
	SubjectID string `json:"ownerId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// User is the persisted record of an identity that has logged in at least
// once. Nothing in the request path depends on it; it exists so the account
// survives across sessions.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
