// internal/tui/drawing.go
package tui

import (
	"unicode"

	"github.com/bethropolis/tidepad/internal/core"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/theme"
	"github.com/rivo/uniseg"
)

// DrawBuffer writes each line of s on its own row starting at the top-left
// corner, using at most viewHeight rows. Characters advance by their display
// width; zero-width marks are combined into the previous cell.
func DrawBuffer(t *TUI, s core.State, activeTheme *theme.Theme, viewHeight int) {
	width, _ := t.Size()
	if viewHeight <= 0 || width <= 0 {
		return
	}
	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)

	for y := 0; y < viewHeight; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
		if y >= len(s.Lines) {
			continue
		}

		x, prevX := 0, -1
		var prevMain rune
		var prevComb []rune
		for _, r := range s.Lines[y] {
			mainc, w := cellRune(r)
			if w == 0 {
				if prevX >= 0 {
					prevComb = append(prevComb, r)
					t.screen.SetContent(prevX, y, prevMain, prevComb, defaultStyle)
				}
				continue
			}
			if x+w > width {
				break
			}
			t.screen.SetContent(x, y, mainc, nil, defaultStyle)
			prevX, prevMain, prevComb = x, mainc, nil
			x += w
		}
	}
}

// cellRune returns the rune drawn for r and the number of cells it takes.
// Tabs and non-printable characters are a single blank cell.
func cellRune(r rune) (rune, int) {
	if r == '\t' || !unicode.IsPrint(r) {
		return ' ', 1
	}
	return r, uniseg.StringWidth(string(r))
}

// displayColumn is the cell offset of the character at 1-based col.
func displayColumn(line string, col int) int {
	x, i := 0, 1
	for _, r := range line {
		if i >= col {
			break
		}
		_, w := cellRune(r)
		x += w
		i++
	}
	return x + (col - i)
}

// DrawCursor places the terminal cursor on the state's character.
// State columns are 1-based characters, tcell cells 0-based display columns.
func DrawCursor(t *TUI, s core.State, viewHeight int) {
	width, _ := t.Size()
	y := s.Cursor.Row - 1
	x := -1
	if y >= 0 && y < len(s.Lines) {
		x = displayColumn(s.Lines[y], s.Cursor.Col)
	}

	if x < 0 || x >= width || y < 0 || y >= viewHeight {
		logger.DebugTagf("render", "DrawCursor: cursor %s outside %dx%d text area, hiding", s.Cursor, width, viewHeight)
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, y)
}

// Render clears the screen, draws the buffer and the cursor, and leaves
// reservedRows at the bottom for the caller (the status bar). The caller
// calls Show once everything is drawn.
func Render(t *TUI, s core.State, activeTheme *theme.Theme, reservedRows int) {
	_, height := t.Size()
	viewHeight := height - reservedRows

	t.Clear()
	DrawBuffer(t, s, activeTheme, viewHeight)
	DrawCursor(t, s, viewHeight)
}
