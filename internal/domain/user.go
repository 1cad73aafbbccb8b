package domain

import "time"

// User is the global identity record. Email is stored normalized
// (trimmed, lowercased) and is unique across the table. PasswordHash
// is a bcrypt hash; plaintext passwords never reach this struct.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public is the caller-facing view of a user, without the hash.
type Public struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}
