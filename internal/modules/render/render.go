package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"vidmeta/internal/models"
	"vidmeta/internal/modules/export"
)

// Renderer draws fetched entities and derived client state to a terminal.
// It is a pure sink: it never mutates the entities it is handed.
type Renderer struct {
	out    io.Writer
	theme  Theme
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Renderer writing to out with the given theme.
func New(out io.Writer, theme Theme, logger *zap.Logger) *Renderer {
	return &Renderer{out: out, theme: theme, logger: logger, now: time.Now}
}

// Out exposes the renderer's destination for raw writes (exports).
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Entity draws the full card for one title.
func (r *Renderer) Entity(e models.Entity) {
	t := r.theme

	fmt.Fprintf(r.out, "\n%s\n", t.Title.Sprint(e.Title))
	r.field("ID", e.VideoID)
	r.field("Runtime", export.FormatRuntime(e.RuntimeSec))

	if e.Certification != "" {
		rated := e.Certification
		if len(e.AdvisoryReasons) > 0 {
			rated += " (" + strings.Join(e.AdvisoryReasons, ", ") + ")"
		}
		r.field("Rated", rated)
	}

	if tags := splitTags(e.Genre); len(tags) > 0 {
		styled := make([]string, len(tags))
		for i, tag := range tags {
			styled[i] = t.Tag.Sprintf("[%s]", tag)
		}
		r.field("Genres", strings.Join(styled, " "))
	}

	r.field("Playable", yesNo(e.Playable))
	r.field("Downloadable", yesNo(e.DownloadEnabled))

	if e.AvailableFrom.After(r.now()) {
		r.field("Available", t.Warn.Sprintf("%s (%s)",
			humanize.Time(e.AvailableFrom),
			e.AvailableFrom.Format("2006-01-02 15:04 MST")))
	} else if !e.AvailableFrom.IsZero() {
		r.field("Available", "now")
	}

	if e.Synopsis != "" {
		fmt.Fprintf(r.out, "\n%s\n", t.Value.Sprint(e.Synopsis))
	}

	r.artwork(e.Images)
}

// Comparison draws up to four entities side by side.
func (r *Renderer) Comparison(entities []models.Entity) {
	t := r.theme
	fmt.Fprintf(r.out, "\n%s\n\n", t.Title.Sprintf("Comparing %d titles", len(entities)))

	w := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	row := func(label string, value func(models.Entity) string) {
		fmt.Fprint(w, t.Label.Sprint(label))
		for _, e := range entities {
			fmt.Fprintf(w, "\t%s", value(e))
		}
		fmt.Fprintln(w)
	}

	row("Title", func(e models.Entity) string { return e.Title })
	row("ID", func(e models.Entity) string { return e.VideoID })
	row("Runtime", func(e models.Entity) string { return export.FormatRuntime(e.RuntimeSec) })
	row("Rated", func(e models.Entity) string { return orDash(e.Certification) })
	row("Genres", func(e models.Entity) string { return orDash(e.Genre) })
	row("Playable", func(e models.Entity) string { return yesNo(e.Playable) })
	w.Flush()
}

// History draws prior searches, newest first, with relative timestamps.
func (r *Renderer) History(entries []models.HistoryEntry) {
	t := r.theme
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No search history.")
		return
	}

	fmt.Fprintf(r.out, "%s\n", t.Title.Sprint("Search history"))
	for _, e := range entries {
		fmt.Fprintf(r.out, "  %s  %s  %s\n",
			t.Value.Sprint(e.VideoID),
			e.Title,
			t.Label.Sprint(humanize.Time(e.Timestamp)))
	}
}

// Stats draws the analytics snapshot and, when known, the rate-limit state.
func (r *Renderer) Stats(snap models.AnalyticsSnapshot, rate models.RateLimit, rateKnown bool) {
	t := r.theme
	fmt.Fprintf(r.out, "%s\n", t.Title.Sprint("Search analytics"))
	r.field("Total searches", fmt.Sprintf("%d", snap.TotalSearches))
	if len(snap.SearchTimes) > 0 {
		// Moving average over the retained window, not a lifetime mean.
		r.field("Avg response", fmt.Sprintf("%.0fms (last %d)", snap.AvgResponseTime, len(snap.SearchTimes)))
	}
	if rateKnown {
		r.field("Rate limit", fmt.Sprintf("%d/%d remaining", rate.Remaining, rate.Limit))
	}

	if len(snap.RecentSearches) > 0 {
		fmt.Fprintf(r.out, "%s\n", t.Label.Sprint("Recent:"))
		for _, s := range snap.RecentSearches {
			fmt.Fprintf(r.out, "  %s  %dms\n", s.VideoID, s.ElapsedMS)
		}
	}
}

// Footer draws the search elapsed time and the shareable URL.
func (r *Renderer) Footer(elapsed time.Duration, shareURL string) {
	fmt.Fprintf(r.out, "\n%s\n", r.theme.Label.Sprintf("Fetched in %dms", elapsed.Milliseconds()))
	if shareURL != "" {
		fmt.Fprintf(r.out, "%s %s\n", r.theme.Label.Sprint("Share:"), shareURL)
	}
}

// Error draws a single user-facing failure line.
func (r *Renderer) Error(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.theme.Warn.Sprint("Search failed:"), msg)
}

func (r *Renderer) artwork(images []models.Artwork) {
	available := images[:0:0]
	for _, img := range images {
		if img.Available {
			available = append(available, img)
		}
	}
	if len(available) == 0 {
		return
	}

	fmt.Fprintf(r.out, "\n%s\n", r.theme.Label.Sprint("Artwork:"))
	for _, img := range available {
		kind := img.Kind
		if kind == "" {
			kind = "image"
		}
		fmt.Fprintf(r.out, "  %s  %s\n", kind, img.URL)
	}
}

func (r *Renderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %s\t%s\n", r.theme.Label.Sprintf("%-13s", label), value)
}

// splitTags turns the comma-delimited genre field into independent tags.
// An absent field yields nothing.
func splitTags(genre string) []string {
	if strings.TrimSpace(genre) == "" {
		return nil
	}
	parts := strings.Split(genre, ",")
	tags := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
