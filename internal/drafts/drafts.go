// Package drafts persists in-progress project postings as one ordered list
// under a single storage key.
//
// The store never surfaces storage or parse failures: an unreadable list is
// an empty list, an unknown id is a plain "not found", and failed writes are
// logged and dropped.
package drafts

import (
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/swipestate/internal/model"
	"github.com/debemdeboas/swipestate/internal/storage"
)

const (
	DefaultKey       = "project_drafts"
	DefaultLegacyKey = "project_draft"
	DefaultTitle     = "Untitled Project"
)

var draftsLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	draftsLogger = l
}

type Store struct {
	mu sync.Mutex

	store       storage.Store
	key         string
	legacyKey   string
	placeholder string

	now   func() time.Time
	newID func() model.DraftID
}

type Option func(*Store)

func WithKeys(key, legacyKey string) Option {
	return func(s *Store) {
		s.key = key
		s.legacyKey = legacyKey
	}
}

// WithPlaceholder sets the title used when the form has none.
func WithPlaceholder(title string) Option {
	return func(s *Store) { s.placeholder = title }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() model.DraftID) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(store storage.Store, opts ...Option) *Store {
	s := &Store{
		store:       store,
		key:         DefaultKey,
		legacyKey:   DefaultLegacyKey,
		placeholder: DefaultTitle,
		now:         time.Now,
		newID:       newDraftID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newDraftID returns a time-ordered UUID, so ids sort by creation.
func newDraftID() model.DraftID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return model.DraftID(id.String())
}

func (s *Store) load() []model.Draft {
	list, err := storage.Decode[[]model.Draft](s.store, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			draftsLogger.Warn().Err(err).Str("key", s.key).Msg("Draft list unreadable, treating as empty")
		}
		return []model.Draft{}
	}

	seen := make(map[model.DraftID]struct{}, len(list))
	drafts := make([]model.Draft, 0, len(list))
	for _, d := range list {
		if _, dup := seen[d.ID]; dup {
			draftsLogger.Warn().Str("draft_id", string(d.ID)).Msg("Dropping duplicate draft id")
			continue
		}
		seen[d.ID] = struct{}{}
		drafts = append(drafts, d)
	}
	return drafts
}

func (s *Store) save(drafts []model.Draft) {
	if err := storage.Encode(s.store, s.key, drafts); err != nil {
		draftsLogger.Error().Err(err).Int("drafts", len(drafts)).Msg("Failed to encode draft list")
	}
}

// ListDrafts returns every draft in insertion order.
func (s *Store) ListDrafts() []model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// SaveDraft appends form as a new draft and returns the new record.
func (s *Store) SaveDraft(form model.FormData) model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.load()
	d := s.newDraft(drafts, form)
	s.save(append(drafts, d))

	draftsLogger.Debug().Str("draft_id", string(d.ID)).Str("title", d.Title).Msg("Draft saved")
	return d
}

func (s *Store) newDraft(existing []model.Draft, form model.FormData) model.Draft {
	id := s.newID()
	for indexOf(existing, id) >= 0 {
		id = s.newID()
	}
	data := normalize(form)
	return model.Draft{
		ID:        id,
		Data:      data,
		CreatedAt: s.now().UTC(),
		Title:     model.TitleFrom(data, s.placeholder),
	}
}

// normalize returns a copy of form holding the values it will read back
// with, so a returned draft equals what LoadDraft gives and does not share
// the caller's map.
func normalize(form model.FormData) model.FormData {
	raw, err := json.Marshal(form)
	if err == nil {
		var data model.FormData
		if err = json.Unmarshal(raw, &data); err == nil {
			return data
		}
	}
	draftsLogger.Warn().Err(err).Msg("Form data is not JSON encodable")
	return maps.Clone(form)
}

func (s *Store) LoadDraft(id model.DraftID) (model.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.load()
	if i := indexOf(drafts, id); i >= 0 {
		return drafts[i], true
	}
	return model.Draft{}, false
}

// UpdateDraft replaces the form of an existing draft in place. The id,
// creation time and list position are kept; the title is derived again.
func (s *Store) UpdateDraft(id model.DraftID, form model.FormData) (model.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.load()
	i := indexOf(drafts, id)
	if i < 0 {
		return model.Draft{}, false
	}

	data := normalize(form)
	drafts[i] = model.Draft{
		ID:        id,
		Data:      data,
		CreatedAt: drafts[i].CreatedAt,
		Title:     model.TitleFrom(data, s.placeholder),
	}
	s.save(drafts)
	return drafts[i], true
}

// DeleteDraft removes id. Unknown ids are ignored and nothing is written.
func (s *Store) DeleteDraft(id model.DraftID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.load()
	i := indexOf(drafts, id)
	if i < 0 {
		return
	}
	s.save(slices.Delete(drafts, i, i+1))
}

// MigrateLegacy moves a form snapshot left under the single-draft legacy key
// into the draft list and blanks the legacy key.
func (s *Store) MigrateLegacy() (model.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := storage.Decode[model.FormData](s.store, s.legacyKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			draftsLogger.Warn().Err(err).Str("key", s.legacyKey).Msg("Legacy draft unreadable, leaving it in place")
		}
		return model.Draft{}, false
	}

	drafts := s.load()
	d := s.newDraft(drafts, form)
	s.save(append(drafts, d))
	// Cleared after the list is written: a crash in between duplicates the
	// draft instead of losing it.
	s.store.Write(s.legacyKey, "")

	draftsLogger.Info().Str("draft_id", string(d.ID)).Msg("Migrated legacy draft")
	return d, true
}

// SortForDisplay returns a newest-first copy of drafts.
func SortForDisplay(drafts []model.Draft) []model.Draft {
	sorted := slices.Clone(drafts)
	slices.SortStableFunc(sorted, func(a, b model.Draft) int {
		return -a.CreatedAt.Compare(b.CreatedAt)
	})
	return sorted
}

func indexOf(drafts []model.Draft, id model.DraftID) int {
	return slices.IndexFunc(drafts, func(d model.Draft) bool { return d.ID == id })
}
