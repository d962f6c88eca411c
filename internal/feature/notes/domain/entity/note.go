// Package entity defines the domain model for the notes feature.
package entity

import "time"

// Note is a single free-text note owned by exactly one user.
type Note struct {
	ID        uint
	UserID    uint
	Text      string
	CreatedAt time.Time
}
