package analytics

import (
	"fmt"
	"testing"

	"vidmeta/internal/modules/storage"

	"go.uber.org/zap/zaptest"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return New(storage.New(t.TempDir(), logger), logger)
}

func TestTrackWindowAndAverage(t *testing.T) {
	tr := newTestTracker(t)

	// 51 samples: 100, 101, ..., 150. The first (100) must age out.
	for i := 0; i <= 50; i++ {
		tr.Track(fmt.Sprintf("id-%d", i), int64(100+i))
	}

	snap := tr.Snapshot()
	if snap.TotalSearches != 51 {
		t.Errorf("expected totalSearches 51, got %d", snap.TotalSearches)
	}
	if len(snap.SearchTimes) != 50 {
		t.Fatalf("expected window of 50 samples, got %d", len(snap.SearchTimes))
	}
	if snap.SearchTimes[0] != 101 || snap.SearchTimes[49] != 150 {
		t.Errorf("expected window [101..150], got [%d..%d]",
			snap.SearchTimes[0], snap.SearchTimes[49])
	}

	var sum int64
	for _, ms := range snap.SearchTimes {
		sum += ms
	}
	want := float64(sum) / 50
	if snap.AvgResponseTime != want {
		t.Errorf("expected moving average %v, got %v", want, snap.AvgResponseTime)
	}
}

func TestTrackRecentCap(t *testing.T) {
	tr := newTestTracker(t)

	for i := 0; i < 12; i++ {
		tr.Track(fmt.Sprintf("id-%02d", i), int64(i))
	}

	snap := tr.Snapshot()
	if len(snap.RecentSearches) != 10 {
		t.Fatalf("expected recent list capped at 10, got %d", len(snap.RecentSearches))
	}
	if snap.RecentSearches[0].VideoID != "id-11" {
		t.Errorf("expected newest search first, got %s", snap.RecentSearches[0].VideoID)
	}
	if snap.RecentSearches[9].VideoID != "id-02" {
		t.Errorf("expected oldest retained search id-02, got %s", snap.RecentSearches[9].VideoID)
	}
}

func TestPersistsAcrossReload(t *testing.T) {
	logger := zaptest.NewLogger(t)
	state := storage.New(t.TempDir(), logger)

	tr := New(state, logger)
	tr.Track("81040344", 250)
	tr.Track("80192098", 350)

	reloaded := New(state, logger)
	snap := reloaded.Snapshot()
	if snap.TotalSearches != 2 {
		t.Errorf("expected totalSearches 2 after reload, got %d", snap.TotalSearches)
	}
	if snap.AvgResponseTime != 300 {
		t.Errorf("expected average 300 after reload, got %v", snap.AvgResponseTime)
	}
}

func TestReset(t *testing.T) {
	tr := newTestTracker(t)
	tr.Track("81040344", 250)
	tr.Reset()

	snap := tr.Snapshot()
	if snap.TotalSearches != 0 || len(snap.SearchTimes) != 0 {
		t.Errorf("expected empty snapshot after reset, got %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := newTestTracker(t)
	tr.Track("81040344", 250)

	snap := tr.Snapshot()
	snap.SearchTimes[0] = 9999

	if tr.Snapshot().SearchTimes[0] != 250 {
		t.Error("mutating a snapshot must not affect tracker state")
	}
}
