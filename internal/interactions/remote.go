package interactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/debemdeboas/swipestate/internal/model"
)

// Remote is the recommendation service as seen from the device. Transport,
// retries and auth all live behind it.
type Remote interface {
	FetchFavorites(ctx context.Context) ([]model.FavoriteEntry, error)
	FetchHistory(ctx context.Context) ([]model.HistoryEntry, error)
	SubmitSwipe(ctx context.Context, card model.Card, action model.SwipeAction) error
}

// Refresh fetches both collections and syncs whichever arrived. The returned
// data is always the current local state; the error joins any fetch failures.
func (c *Cache) Refresh(ctx context.Context, remote Remote) (model.LocalData, error) {
	var errs []error

	if favorites, err := remote.FetchFavorites(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fetch favorites: %w", err))
	} else {
		c.SyncFavorites(favorites)
	}

	if history, err := remote.FetchHistory(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fetch history: %w", err))
	} else {
		c.SyncHistory(history)
	}

	return c.GetLocal(), errors.Join(errs...)
}

// Swipe records the swipe locally, then tells the server. The local record
// is kept whatever the server says; a submit failure is only logged and the
// next Refresh carries the entry over.
func (c *Cache) Swipe(ctx context.Context, remote Remote, card model.Card, action model.SwipeAction) {
	now := c.now().UTC()

	c.AddToHistory(model.HistoryEntry{Card: card, Action: action, ViewedAt: &now})
	if action == model.SwipeLike {
		c.AddToFavorites(model.FavoriteEntry{Card: card, AddedAt: &now})
	}

	if remote == nil {
		return
	}
	if err := remote.SubmitSwipe(ctx, card, action); err != nil {
		interactionsLogger.Warn().
			Err(err).
			Str("card_id", string(card.ID)).
			Str("action", string(action)).
			Msg("Swipe submit failed, kept locally")
	}
}
