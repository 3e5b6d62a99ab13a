package history

import (
	"strings"
	"time"

	"vidmeta/internal/models"
	"vidmeta/internal/modules/storage"

	"go.uber.org/zap"
)

const (
	// StorageKey is the persisted-state key for the history list.
	StorageKey = "search_history"

	maxEntries = 20
)

// Store keeps a bounded, most-recent-first list of prior searches,
// deduplicated by identifier and persisted through the state store.
type Store struct {
	state   *storage.Store
	entries []models.HistoryEntry
	logger  *zap.Logger
	now     func() time.Time
}

// New loads the persisted history into memory.
func New(state *storage.Store, logger *zap.Logger) *Store {
	return &Store{
		state:   state,
		entries: storage.Read(state, StorageKey, []models.HistoryEntry{}),
		logger:  logger,
		now:     time.Now,
	}
}

// Record notes a successful search. Any existing entry with the same
// identifier is removed, the new entry is prepended with the current time, and
// the list is truncated to the 20 most recent before persisting.
func (s *Store) Record(videoID, title string) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.VideoID != videoID {
			kept = append(kept, e)
		}
	}

	entry := models.HistoryEntry{VideoID: videoID, Title: title, Timestamp: s.now()}
	s.entries = append([]models.HistoryEntry{entry}, kept...)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[:maxEntries]
	}

	s.logger.Debug("recorded search",
		zap.String("video_id", videoID),
		zap.Int("history_size", len(s.entries)))
	storage.Write(s.state, StorageKey, s.entries)
}

// Clear empties the history and persists the empty list.
func (s *Store) Clear() {
	s.entries = []models.HistoryEntry{}
	storage.Write(s.state, StorageKey, s.entries)
	s.logger.Info("search history cleared")
}

// Filter returns entries whose title contains query case-insensitively or
// whose identifier contains it case-sensitively. Pure read, no persistence.
func (s *Store) Filter(query string) []models.HistoryEntry {
	if query == "" {
		return s.Entries()
	}

	lower := strings.ToLower(query)
	var matched []models.HistoryEntry
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.Title), lower) || strings.Contains(e.VideoID, query) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Entries returns a copy of the current history, newest first.
func (s *Store) Entries() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
