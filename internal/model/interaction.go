package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// CardID identifies a recommendation card. The backend sends ids either as
// JSON strings or JSON numbers; both decode to the same CardID.
type CardID string

func (id *CardID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = CardID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("card id: %w", err)
	}
	*id = CardID(n.String())
	return nil
}

type Card struct {
	ID          CardID   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type SwipeAction string

const (
	SwipeLike SwipeAction = "like"
	SwipePass SwipeAction = "pass"
)

// FavoriteEntry is a card the user liked. LikeID is empty until the server
// has acknowledged the like.
type FavoriteEntry struct {
	LikeID  string     `json:"likeId,omitempty"`
	Card    Card       `json:"card"`
	AddedAt *time.Time `json:"addedAt,omitempty"`
}

func (e FavoriteEntry) EntryID() string { return e.LikeID }
func (e FavoriteEntry) CardKey() string { return string(e.Card.ID) }

// HistoryEntry is a card the user has already been shown.
type HistoryEntry struct {
	HistoryID string      `json:"historyId,omitempty"`
	Card      Card        `json:"card"`
	Action    SwipeAction `json:"action,omitempty"`
	ViewedAt  *time.Time  `json:"viewedAt,omitempty"`
}

func (e HistoryEntry) EntryID() string { return e.HistoryID }
func (e HistoryEntry) CardKey() string { return string(e.Card.ID) }

// LocalData is the single persisted document of the interaction cache.
type LocalData struct {
	Favorites   []FavoriteEntry `json:"favorites"`
	History     []HistoryEntry  `json:"history"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
