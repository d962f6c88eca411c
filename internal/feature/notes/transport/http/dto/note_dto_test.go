package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes_backend/internal/feature/notes/domain/entity"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc with micros", time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.UTC), "2024-03-01T12:30:45.123456Z"},
		{"whole second keeps zeros", time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC), "2024-03-01T12:30:45.000000Z"},
		{"offset converted to utc", time.Date(2024, 3, 1, 21, 0, 0, 0, time.FixedZone("JST", 9*3600)), "2024-03-01T12:00:00.000000Z"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatTimestamp(tt.in))
		})
	}
}

func TestToNoteResList_EmptyEncodesAsArray(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(ToNoteResList(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestToNoteRes_OmitsOwner(t *testing.T) {
	t.Parallel()

	n := entity.Note{ID: 1, UserID: 7, Text: "buy milk", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(ToNoteRes(n))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"text":"buy milk","created_at":"2024-03-01T00:00:00.000000Z"}`, string(b))
}
