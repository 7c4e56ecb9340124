package interactions

// entry is implemented by model.FavoriteEntry and model.HistoryEntry.
type entry interface {
	EntryID() string
	CardKey() string
}

// keySet indexes entries by both of their identifiers. An entry matches when
// either its own id or its card id has been seen.
type keySet struct {
	ids   map[string]struct{}
	cards map[string]struct{}
}

func newKeySet(capacity int) *keySet {
	return &keySet{
		ids:   make(map[string]struct{}, capacity),
		cards: make(map[string]struct{}, capacity),
	}
}

func (k *keySet) has(e entry) bool {
	if id := e.EntryID(); id != "" {
		if _, ok := k.ids[id]; ok {
			return true
		}
	}
	if card := e.CardKey(); card != "" {
		if _, ok := k.cards[card]; ok {
			return true
		}
	}
	return false
}

func (k *keySet) add(e entry) {
	if id := e.EntryID(); id != "" {
		k.ids[id] = struct{}{}
	}
	if card := e.CardKey(); card != "" {
		k.cards[card] = struct{}{}
	}
}

func keyed(e entry) bool {
	return e.EntryID() != "" || e.CardKey() != ""
}

// mergeAdditive keeps server as the base, in order and without duplicates,
// then appends every local entry the server does not know about. Nothing
// present on either side is dropped, except duplicates and unkeyed local
// entries.
func mergeAdditive[E entry](server, local []E) []E {
	seen := newKeySet(len(server) + len(local))
	merged := make([]E, 0, len(server)+len(local))

	for _, e := range server {
		if seen.has(e) {
			continue
		}
		seen.add(e)
		merged = append(merged, e)
	}

	for _, e := range local {
		if !keyed(e) || seen.has(e) {
			continue
		}
		seen.add(e)
		merged = append(merged, e)
	}

	return merged
}

// prependIfAbsent returns list with e at the front, or list unchanged when e
// is already present.
func prependIfAbsent[E entry](list []E, e E) ([]E, bool) {
	seen := newKeySet(len(list))
	for _, existing := range list {
		seen.add(existing)
	}
	if seen.has(e) {
		return list, false
	}
	return append([]E{e}, list...), true
}

// removeMatching drops every entry sharing an identifier with target. Entry
// ids are only compared with entry ids and card ids with card ids.
func removeMatching[E entry](list []E, target E) ([]E, bool) {
	if !keyed(target) {
		return list, false
	}
	selector := newKeySet(1)
	selector.add(target)

	kept := make([]E, 0, len(list))
	for _, e := range list {
		if !selector.has(e) {
			kept = append(kept, e)
		}
	}
	return kept, len(kept) != len(list)
}
