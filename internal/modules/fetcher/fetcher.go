package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"vidmeta/internal/models"
	"vidmeta/internal/modules/analytics"
	"vidmeta/internal/modules/history"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrStale marks a result from a search that was superseded by a newer one
// before it completed. Callers drop the result without surfacing an error.
var ErrStale = errors.New("superseded by a newer search")

// maxBatchSize bounds a comparison search; extra identifiers are dropped.
const maxBatchSize = 4

// Fetcher issues metadata requests, classifies failures into one user-facing
// message, and feeds history and analytics on success. Batch requests run
// sequentially, so at most one request is outstanding at any time.
type Fetcher struct {
	client  *http.Client
	baseURL string
	apiKey  string
	history *history.Store
	stats   *analytics.Tracker
	logger  *zap.Logger

	mu     sync.Mutex
	latest string
	rate   *models.RateLimit
}

// New creates a Fetcher against baseURL. apiKey may be empty.
func New(baseURL, apiKey string, timeout time.Duration, hist *history.Store, stats *analytics.Tracker, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		history: hist,
		stats:   stats,
		logger:  logger,
	}
}

// Search fetches a single identifier. On success the entity is recorded in
// history, the elapsed time tracked in analytics, and both returned. A result
// whose generation token is no longer the latest is discarded with ErrStale.
func (f *Fetcher) Search(ctx context.Context, videoID string) (*models.SearchResult, error) {
	token := f.issueToken()
	start := time.Now()

	entity, err := f.fetchOne(ctx, videoID)
	elapsed := time.Since(start)

	if !f.isLatest(token) {
		f.logger.Debug("discarding stale search result", zap.String("video_id", videoID))
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	f.history.Record(entity.VideoID, entity.Title)
	f.stats.Track(videoID, elapsed.Milliseconds())
	f.logger.Info("search completed",
		zap.String("video_id", videoID),
		zap.String("title", entity.Title),
		zap.Duration("elapsed", elapsed))

	return &models.SearchResult{
		Entities: []models.Entity{*entity},
		Elapsed:  elapsed,
		Token:    token,
	}, nil
}

// SearchBatch fetches up to four identifiers sequentially for a comparison
// view. Per-identifier failures are skipped; only an empty overall result is
// an error. Elapsed time covers the whole batch.
func (f *Fetcher) SearchBatch(ctx context.Context, videoIDs []string) (*models.SearchResult, error) {
	if len(videoIDs) > maxBatchSize {
		f.logger.Warn("batch truncated",
			zap.Int("requested", len(videoIDs)),
			zap.Int("max", maxBatchSize))
		videoIDs = videoIDs[:maxBatchSize]
	}

	token := f.issueToken()
	start := time.Now()

	var entities []models.Entity
	for _, id := range videoIDs {
		entity, err := f.fetchOne(ctx, id)
		if err != nil {
			f.logger.Debug("skipping failed batch item",
				zap.String("video_id", id),
				zap.Error(err))
			continue
		}
		entities = append(entities, *entity)
	}
	elapsed := time.Since(start)

	if !f.isLatest(token) {
		f.logger.Debug("discarding stale batch result")
		return nil, ErrStale
	}
	if len(entities) == 0 {
		return nil, errors.New("none of the requested titles were found")
	}

	for _, e := range entities {
		f.history.Record(e.VideoID, e.Title)
	}
	f.stats.Track(strings.Join(videoIDs, ","), elapsed.Milliseconds())
	f.logger.Info("batch search completed",
		zap.Int("requested", len(videoIDs)),
		zap.Int("found", len(entities)),
		zap.Duration("elapsed", elapsed))

	return &models.SearchResult{Entities: entities, Elapsed: elapsed, Token: token}, nil
}

// RateLimit returns the last rate-limit headers seen, if any.
func (f *Fetcher) RateLimit() (models.RateLimit, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rate == nil {
		return models.RateLimit{}, false
	}
	return *f.rate, true
}

func (f *Fetcher) fetchOne(ctx context.Context, videoID string) (*models.Entity, error) {
	reqURL := f.baseURL + "?videoId=" + url.QueryEscape(videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("search failed: %v", err)
	}
	if f.apiKey != "" {
		req.Header.Set("X-Api-Key", f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %v", err)
	}
	defer resp.Body.Close()

	f.updateRateLimit(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search failed: %v", err)
	}

	var parsed models.APIResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && parsed.Error != "" {
			return nil, errors.New(parsed.Error)
		}
		return nil, fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("could not read the metadata response: %v", decodeErr)
	}
	if parsed.Data == nil || len(parsed.Data.UnifiedEntities) == 0 {
		return nil, fmt.Errorf("no title found for %q", videoID)
	}

	return &parsed.Data.UnifiedEntities[0], nil
}

// updateRateLimit overwrites the rate state when both headers are present and
// leaves it untouched otherwise. No decay or estimation happens in between.
func (f *Fetcher) updateRateLimit(h http.Header) {
	remaining, errR := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	limit, errL := strconv.Atoi(h.Get("X-RateLimit-Limit"))
	if errR != nil || errL != nil {
		return
	}

	f.mu.Lock()
	f.rate = &models.RateLimit{Remaining: remaining, Limit: limit}
	f.mu.Unlock()
	f.logger.Debug("rate limit updated",
		zap.Int("remaining", remaining),
		zap.Int("limit", limit))
}

func (f *Fetcher) issueToken() string {
	token := uuid.NewString()
	f.mu.Lock()
	f.latest = token
	f.mu.Unlock()
	return token
}

func (f *Fetcher) isLatest(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest == token
}
