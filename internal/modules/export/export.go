package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"vidmeta/internal/models"
)

// Format selects an export encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Render encodes an entity in the requested format.
func Render(e models.Entity, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(e), nil
	case FormatJSON:
		return JSON(e)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// Markdown renders the fixed export template. Sections for absent fields are
// left out rather than rendered empty.
func Markdown(e models.Entity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", e.Title)
	fmt.Fprintf(&b, "- **ID**: %s\n", e.VideoID)
	fmt.Fprintf(&b, "- **Runtime**: %s\n", FormatRuntime(e.RuntimeSec))
	if e.Certification != "" {
		fmt.Fprintf(&b, "- **Rated**: %s\n", e.Certification)
	}
	if len(e.AdvisoryReasons) > 0 {
		fmt.Fprintf(&b, "- **Advisories**: %s\n", strings.Join(e.AdvisoryReasons, ", "))
	}
	if e.Genre != "" {
		fmt.Fprintf(&b, "- **Genres**: %s\n", e.Genre)
	}
	if !e.AvailableFrom.IsZero() {
		fmt.Fprintf(&b, "- **Available from**: %s\n", e.AvailableFrom.Format("2006-01-02 15:04 MST"))
	}
	if e.Synopsis != "" {
		fmt.Fprintf(&b, "\n%s\n", e.Synopsis)
	}
	return b.String()
}

// JSON returns the entity verbatim, pretty-printed.
func JSON(e models.Entity) (string, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode entity: %v", err)
	}
	return string(data), nil
}

// FormatRuntime renders whole seconds as "Hh Mm", dropping the hour part
// under an hour: 5400 -> "1h 30m", 125 -> "2m".
func FormatRuntime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
