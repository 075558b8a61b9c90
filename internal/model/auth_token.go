package model

import "time"

// AuthToken is a persisted bearer token. Token holds the SHA-256 hex digest of
// the opaque secret handed to the client; the plaintext never touches storage.
type AuthToken struct {
	Token     string    `json:"-" gorm:"primaryKey;size:64"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}
