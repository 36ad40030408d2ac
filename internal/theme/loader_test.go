package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadThemeFromFile(t *testing.T) {
	path := writeTheme(t, "paper.toml", `
name = "Paper"
is_dark = false

[styles.Default]
fg = "#000000"
bg = "white"

[styles.StatusBar]
reverse = true
bold = true
`)

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Paper", th.Name)
	assert.False(t, th.IsDark)

	fg, bg, _ := th.GetStyle(StyleDefault).Decompose()
	assert.Equal(t, tcell.NewHexColor(0x000000), fg)
	assert.Equal(t, tcell.ColorWhite, bg)

	// StatusBar inherits colors from Default and adds attributes.
	sfg, sbg, attrs := th.GetStyle(StyleStatusBar).Decompose()
	assert.Equal(t, fg, sfg)
	assert.Equal(t, bg, sbg)
	assert.NotZero(t, attrs&tcell.AttrReverse)
	assert.NotZero(t, attrs&tcell.AttrBold)

	// Missing styles come from the built-in theme.
	assert.Equal(t, Default().GetStyle(StyleStatusBarMessage), th.GetStyle(StyleStatusBarMessage))
}

func TestLoadThemeNameFromFilename(t *testing.T) {
	path := writeTheme(t, "midnight.toml", "[styles.Default]\nfg = \"reset\"\n")
	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "midnight", th.Name)
}

func TestLoadThemeErrors(t *testing.T) {
	_, err := LoadThemeFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)

	path := writeTheme(t, "broken.toml", "[styles.Default\n")
	_, err = LoadThemeFromFile(path)
	assert.Error(t, err)

	path = writeTheme(t, "badcolor.toml", "[styles.Default]\nfg = \"#12\"\n")
	_, err = LoadThemeFromFile(path)
	assert.Error(t, err)
}

func TestLoadThemeSkipsBadNonDefaultStyle(t *testing.T) {
	path := writeTheme(t, "partial.toml", "[styles.StatusBar]\nbg = \"not-a-color\"\n")
	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().GetStyle(StyleStatusBar), th.GetStyle(StyleStatusBar))
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#ff0000", tcell.NewHexColor(0xff0000), false},
		{" Red ", tcell.ColorRed, false},
		{"reset", tcell.ColorReset, false},
		{"default", tcell.ColorDefault, false},
		{"#fff", tcell.ColorDefault, true},
		{"chartreuse-ish", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		got, err := parseColorString(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestGetStyleFallbacks(t *testing.T) {
	th := Default()
	assert.Equal(t, th.Styles[StyleStatusBar], th.GetStyle("StatusBar.modified"))
	assert.Equal(t, th.Styles[StyleDefault], th.GetStyle("Nope"))

	var nilTheme *Theme
	assert.Equal(t, tcell.StyleDefault, nilTheme.GetStyle(StyleDefault))
	assert.Equal(t, tcell.StyleDefault, (&Theme{}).GetStyle(StyleDefault))
}

func TestResolve(t *testing.T) {
	th, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "DevComfort Dark", th.Name)

	_, err = Resolve(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
