// Package marks holds the learner's question registries: bookmarks and
// the review-later list. Both are unordered id sets toggled from any
// mode and persisted immediately.
package marks

import (
	"encoding/json"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mpatel/biotutor/internal/storage"
)

const (
	bookmarksKey   = "bookmarks"
	reviewLaterKey = "review-later"
)

// Set is a persistent set of question ids under one storage key.
type Set struct {
	key   string
	store storage.Adapter
	log   zerolog.Logger
}

// NewBookmarks returns the bookmark registry.
func NewBookmarks(store storage.Adapter, log zerolog.Logger) *Set {
	return &Set{key: bookmarksKey, store: store, log: log}
}

// NewReviewLater returns the review-later registry.
func NewReviewLater(store storage.Adapter, log zerolog.Logger) *Set {
	return &Set{key: reviewLaterKey, store: store, log: log}
}

// Toggle flips membership of the question id and reports the new state:
// true when the id is now in the set.
func (s *Set) Toggle(questionID string) bool {
	ids := s.load()
	added := !ids[questionID]
	if added {
		ids[questionID] = true
	} else {
		delete(ids, questionID)
	}
	s.save(ids)
	return added
}

// Contains reports whether the question id is in the set.
func (s *Set) Contains(questionID string) bool {
	return s.load()[questionID]
}

// All returns the member ids sorted for stable display.
func (s *Set) All() []string {
	ids := s.load()
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IDSet returns membership as a lookup map.
func (s *Set) IDSet() map[string]bool {
	return s.load()
}

// Remove deletes the question id from the set if present.
func (s *Set) Remove(questionID string) {
	ids := s.load()
	if !ids[questionID] {
		return
	}
	delete(ids, questionID)
	s.save(ids)
}

// Clear empties the set.
func (s *Set) Clear() {
	s.store.Delete(s.key)
}

func (s *Set) load() map[string]bool {
	ids := make(map[string]bool)
	raw, ok := s.store.Get(s.key)
	if !ok {
		return ids
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("mark registry unreadable, treating as empty")
		return ids
	}
	for _, id := range list {
		ids[id] = true
	}
	return ids
}

func (s *Set) save(ids map[string]bool) {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)
	raw, err := json.Marshal(list)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("marshal mark registry failed")
		return
	}
	s.store.Set(s.key, raw)
}
