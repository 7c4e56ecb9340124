// Package interactions keeps the device-local copy of favorited and seen
// cards consistent with what the server returns.
//
// Reconciliation is additive only. The server list is taken as complete for
// everything it knows about, and local entries it does not know about are
// appended. Nothing is ever removed by a sync, so an entry deleted on the
// server stays local until RemoveFromFavorites/RemoveFromHistory is called.
package interactions

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/swipestate/internal/model"
	"github.com/debemdeboas/swipestate/internal/storage"
)

const DefaultKey = "tinder_app_data"

var interactionsLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	interactionsLogger = l
}

// Patch lists the collections SaveLocal should replace. Nil fields are kept.
type Patch struct {
	Favorites *[]model.FavoriteEntry
	History   *[]model.HistoryEntry
}

type Cache struct {
	mu sync.Mutex

	store storage.Store
	key   string
	now   func() time.Time
}

type Option func(*Cache)

func WithKey(key string) Option {
	return func(c *Cache) { c.key = key }
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func NewCache(store storage.Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		key:   DefaultKey,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetLocal returns the persisted document, or an empty one stamped with the
// current time when nothing readable is stored.
func (c *Cache) GetLocal() model.LocalData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Cache) load() model.LocalData {
	data, err := storage.Decode[model.LocalData](c.store, c.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			interactionsLogger.Warn().Err(err).Str("key", c.key).Msg("Local interaction data unreadable, using defaults")
		}
		return model.LocalData{
			Favorites:   []model.FavoriteEntry{},
			History:     []model.HistoryEntry{},
			LastUpdated: c.now().UTC(),
		}
	}

	if data.Favorites == nil {
		data.Favorites = []model.FavoriteEntry{}
	}
	if data.History == nil {
		data.History = []model.HistoryEntry{}
	}
	return data
}

// SaveLocal replaces the collections named in p, leaves the others as they
// are, and stamps lastUpdated.
func (c *Cache) SaveLocal(p Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveLocal(p)
}

func (c *Cache) saveLocal(p Patch) {
	data := c.load()
	if p.Favorites != nil {
		data.Favorites = *p.Favorites
	}
	if p.History != nil {
		data.History = *p.History
	}
	data.LastUpdated = c.now().UTC()

	if err := storage.Encode(c.store, c.key, data); err != nil {
		interactionsLogger.Error().Err(err).Msg("Failed to encode local interaction data")
	}
}

// SyncFavorites merges the server's favorites with local-only ones, persists
// the result and returns it.
func (c *Cache) SyncFavorites(server []model.FavoriteEntry) []model.FavoriteEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := mergeAdditive(server, c.load().Favorites)
	c.saveLocal(Patch{Favorites: &merged})

	interactionsLogger.Debug().
		Int("server", len(server)).
		Int("merged", len(merged)).
		Msg("Favorites synced")
	return merged
}

// SyncHistory is SyncFavorites for the history collection.
func (c *Cache) SyncHistory(server []model.HistoryEntry) []model.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := mergeAdditive(server, c.load().History)
	c.saveLocal(Patch{History: &merged})

	interactionsLogger.Debug().
		Int("server", len(server)).
		Int("merged", len(merged)).
		Msg("History synced")
	return merged
}

// AddToFavorites puts e at the front of the favorites unless an entry with
// the same like id or card id is already there. AddedAt defaults to now.
func (c *Cache) AddToFavorites(e model.FavoriteEntry) {
	if !keyed(e) {
		interactionsLogger.Warn().Msg("Ignoring favorite without like id or card id")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e.AddedAt == nil {
		now := c.now().UTC()
		e.AddedAt = &now
	}

	favorites, added := prependIfAbsent(c.load().Favorites, e)
	if added {
		c.saveLocal(Patch{Favorites: &favorites})
	}
}

// AddToHistory puts e at the front of the history unless the card is already
// there. ViewedAt defaults to now.
func (c *Cache) AddToHistory(e model.HistoryEntry) {
	if !keyed(e) {
		interactionsLogger.Warn().Msg("Ignoring history entry without history id or card id")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e.ViewedAt == nil {
		now := c.now().UTC()
		e.ViewedAt = &now
	}

	history, added := prependIfAbsent(c.load().History, e)
	if added {
		c.saveLocal(Patch{History: &history})
	}
}

// RemoveFromFavorites drops every favorite with the same like id or the same
// card id as e. Set only the field to match on, e.g.
// FavoriteEntry{LikeID: "5"} never removes the favorite of card 5. It
// reports whether anything was removed.
func (c *Cache) RemoveFromFavorites(e model.FavoriteEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	favorites, removed := removeMatching(c.load().Favorites, e)
	if removed {
		c.saveLocal(Patch{Favorites: &favorites})
	}
	return removed
}

// RemoveFromHistory is RemoveFromFavorites for history entries.
func (c *Cache) RemoveFromHistory(e model.HistoryEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	history, removed := removeMatching(c.load().History, e)
	if removed {
		c.saveLocal(Patch{History: &history})
	}
	return removed
}
