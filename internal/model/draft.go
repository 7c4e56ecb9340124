// Package model defines the records persisted by the draft store and the interaction cache.
package model

import (
	"strings"
	"time"
)

type DraftID string

// FormData is an opaque snapshot of an in-progress project posting form.
// Stored and returned forms hold JSON-shaped values: float64 numbers,
// []any arrays and map[string]any objects.
type FormData map[string]any

// Draft is a saved, incomplete project posting. Records are never patched:
// an edit replaces the whole record.
type Draft struct {
	ID        DraftID   `json:"id"`
	Data      FormData  `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `json:"title"`
}

// TitleFrom derives a display label from the form's "title" field.
func TitleFrom(data FormData, placeholder string) string {
	if data != nil {
		if s, ok := data["title"].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return placeholder
}
