package models

import "time"

// Entity is the externally-owned metadata record for one media title. The
// schema belongs to the remote API; the client never mutates an Entity after
// decoding it.
type Entity struct {
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	Synopsis        string    `json:"synopsis,omitempty"`
	RuntimeSec      int       `json:"runtimeSec,omitempty"`
	Genre           string    `json:"genre,omitempty"` // comma-delimited
	Certification   string    `json:"certification,omitempty"`
	AdvisoryReasons []string  `json:"advisoryReasons,omitempty"`
	Playable        bool      `json:"playable"`
	DownloadEnabled bool      `json:"downloadEnabled"`
	AvailableFrom   time.Time `json:"availableFrom"`
	Images          []Artwork `json:"images,omitempty"`
}

// Artwork is a single image attached to an entity. Only images the source
// marks available are ever rendered.
type Artwork struct {
	URL       string `json:"url"`
	Kind      string `json:"type,omitempty"`
	Available bool   `json:"available"`
}

// APIResponse is the metadata endpoint's JSON body: either a data envelope or
// an error string, never both.
type APIResponse struct {
	Data  *ResponseData `json:"data,omitempty"`
	Error string        `json:"error,omitempty"`
}

// ResponseData holds the entities matched by a query.
type ResponseData struct {
	UnifiedEntities []Entity `json:"unifiedEntities"`
}

// HistoryEntry is one prior search, unique by identifier, newest first.
type HistoryEntry struct {
	VideoID   string    `json:"videoId"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// RecentSearch pairs an identifier with how long its request took.
type RecentSearch struct {
	VideoID   string `json:"videoId"`
	ElapsedMS int64  `json:"elapsedMs"`
}

// AnalyticsSnapshot is the persisted search-analytics state. AvgResponseTime
// is a moving average over the retained SearchTimes window (last 50 samples),
// not a lifetime mean: older samples age out silently.
type AnalyticsSnapshot struct {
	TotalSearches   int            `json:"totalSearches"`
	AvgResponseTime float64        `json:"avgResponseTime"`
	SearchTimes     []int64        `json:"searchTimes"`
	RecentSearches  []RecentSearch `json:"recentSearches"`
}

// RateLimit mirrors the endpoint's X-RateLimit-* headers. It is overwritten
// wholesale when a response carries the headers and retained otherwise.
type RateLimit struct {
	Remaining int `json:"remaining"`
	Limit     int `json:"limit"`
}

// SearchResult is what the orchestrator hands to the presentation layer: the
// collected entities, the combined wall-clock time, and the generation token
// of the request that produced it.
type SearchResult struct {
	Entities []Entity
	Elapsed  time.Duration
	Token    string
}
