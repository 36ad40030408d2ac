// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the renderer and status bar.
const (
	StyleDefault          = "Default"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the first
// dot, then to "Default", then to tcell's default style.
func (t *Theme) GetStyle(name string) tcell.Style {
	if t == nil {
		return tcell.StyleDefault
	}
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

func newDevComfortDark() Theme {
	dcBackground := tcell.NewHexColor(0x2a2f38) // Muted dark blue/grey (status bar)
	dcForeground := tcell.NewHexColor(0xc5cdd9) // Soft off-white (text)
	dcYellow := tcell.NewHexColor(0xe5c07b)

	// Terminal background, soft foreground
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	return Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          baseStyle,
			StyleStatusBar:        tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			StyleStatusBarMessage: tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow).Bold(true),
		},
	}
}

// Default returns a copy of the built-in theme.
func Default() *Theme {
	t := newDevComfortDark()
	return &t
}

// Resolve returns the theme stored at path, or the built-in theme when path
// is empty.
func Resolve(path string) (*Theme, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadThemeFromFile(path)
}
