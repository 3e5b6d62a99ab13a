package analytics

import (
	"vidmeta/internal/models"
	"vidmeta/internal/modules/storage"

	"go.uber.org/zap"
)

const (
	// StorageKey is the persisted-state key for the analytics snapshot.
	StorageKey = "analytics"

	windowSize = 50
	recentSize = 10
)

// Tracker accumulates per-search latency samples. The average it reports is a
// moving average over the last 50 samples; TotalSearches keeps counting past
// the window.
type Tracker struct {
	state    *storage.Store
	snapshot models.AnalyticsSnapshot
	logger   *zap.Logger
}

// New loads the persisted snapshot into memory.
func New(state *storage.Store, logger *zap.Logger) *Tracker {
	return &Tracker{
		state:    state,
		snapshot: storage.Read(state, StorageKey, models.AnalyticsSnapshot{}),
		logger:   logger,
	}
}

// Track records one completed search: the latency joins the rolling window
// (oldest sample dropped beyond 50), the average is recomputed over the
// retained window, the identifier is prepended to the recent list (cap 10),
// and the lifetime total increments. The whole snapshot persists in one write.
func (t *Tracker) Track(videoID string, elapsedMS int64) {
	snap := &t.snapshot

	snap.SearchTimes = append(snap.SearchTimes, elapsedMS)
	if len(snap.SearchTimes) > windowSize {
		snap.SearchTimes = snap.SearchTimes[len(snap.SearchTimes)-windowSize:]
	}

	var sum int64
	for _, ms := range snap.SearchTimes {
		sum += ms
	}
	snap.AvgResponseTime = float64(sum) / float64(len(snap.SearchTimes))

	recent := models.RecentSearch{VideoID: videoID, ElapsedMS: elapsedMS}
	snap.RecentSearches = append([]models.RecentSearch{recent}, snap.RecentSearches...)
	if len(snap.RecentSearches) > recentSize {
		snap.RecentSearches = snap.RecentSearches[:recentSize]
	}

	snap.TotalSearches++

	t.logger.Debug("tracked search",
		zap.String("video_id", videoID),
		zap.Int64("elapsed_ms", elapsedMS),
		zap.Int("total", snap.TotalSearches))
	storage.Write(t.state, StorageKey, *snap)
}

// Snapshot returns a copy of the current analytics state.
func (t *Tracker) Snapshot() models.AnalyticsSnapshot {
	snap := t.snapshot
	snap.SearchTimes = append([]int64(nil), t.snapshot.SearchTimes...)
	snap.RecentSearches = append([]models.RecentSearch(nil), t.snapshot.RecentSearches...)
	return snap
}

// Reset discards all accumulated analytics.
func (t *Tracker) Reset() {
	t.snapshot = models.AnalyticsSnapshot{}
	storage.Write(t.state, StorageKey, t.snapshot)
	t.logger.Info("analytics reset")
}
