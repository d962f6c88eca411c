// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// User represents a registered account.
// Users are created on registration and never modified afterwards.
type User struct {
	// ID is the surrogate key generated by the store.
	ID uint `gorm:"primaryKey"`

	// Email is the normalized (trimmed, lowercased) login address.
	// Uniqueness is enforced by the storage layer.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the password. Plaintext is never stored.
	PasswordHash string `gorm:"column:password_hash;size:255;not null"`

	CreatedAt time.Time
}

// NormalizeEmail returns the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
