// Package dto defines data transfer objects for the notes feature's HTTP transport layer.
package dto

import (
	"time"

	"notes_backend/internal/feature/notes/domain/entity"
)

// TimestampLayout renders UTC times with microsecond precision and a trailing "Z".
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// CreateNoteReq represents the request body for POST /notes.
type CreateNoteReq struct {
	Text string `json:"text"`
}

// NoteRes is the public view of a note.
type NoteRes struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// DeleteNoteRes is returned with 200 after a note is deleted.
type DeleteNoteRes struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ToNoteRes(n entity.Note) NoteRes {
	return NoteRes{
		ID:        n.ID,
		Text:      n.Text,
		CreatedAt: FormatTimestamp(n.CreatedAt),
	}
}

// ToNoteResList always returns a non-nil slice so an empty list encodes as [].
func ToNoteResList(notes []entity.Note) []NoteRes {
	out := make([]NoteRes, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToNoteRes(n))
	}
	return out
}
