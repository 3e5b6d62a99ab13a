package render

import (
	"github.com/fatih/color"

	"vidmeta/internal/modules/storage"
)

// StorageKey is the persisted-state key for the theme preference.
const StorageKey = "theme"

const defaultTheme = "dark"

// Theme is a named set of ANSI styles applied by the renderer.
type Theme struct {
	Name  string
	Title *color.Color
	Label *color.Color
	Value *color.Color
	Tag   *color.Color
	Warn  *color.Color
}

func themes() map[string]Theme {
	return map[string]Theme{
		"dark": {
			Name:  "dark",
			Title: color.New(color.FgHiWhite, color.Bold),
			Label: color.New(color.FgCyan),
			Value: color.New(color.FgWhite),
			Tag:   color.New(color.FgHiMagenta),
			Warn:  color.New(color.FgYellow),
		},
		"light": {
			Name:  "light",
			Title: color.New(color.FgBlack, color.Bold),
			Label: color.New(color.FgBlue),
			Value: color.New(color.FgBlack),
			Tag:   color.New(color.FgMagenta),
			Warn:  color.New(color.FgRed),
		},
		"mono": {
			Name:  "mono",
			Title: color.New(color.Bold),
			Label: color.New(),
			Value: color.New(),
			Tag:   color.New(),
			Warn:  color.New(),
		},
	}
}

// ThemeByName looks up a theme preset.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes()[name]
	return t, ok
}

// LoadTheme returns the persisted theme preference, or the dark preset when
// none is stored or the stored name no longer exists.
func LoadTheme(state *storage.Store) Theme {
	name := storage.Read(state, StorageKey, defaultTheme)
	if t, ok := ThemeByName(name); ok {
		return t
	}
	t, _ := ThemeByName(defaultTheme)
	return t
}

// SaveTheme persists a theme preference. Unknown names are ignored and the
// previous preference kept.
func SaveTheme(state *storage.Store, name string) bool {
	if _, ok := ThemeByName(name); !ok {
		return false
	}
	storage.Write(state, StorageKey, name)
	return true
}
