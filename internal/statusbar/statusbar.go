// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/theme"
	"github.com/bethropolis/tidepad/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// StatusBar is the bottom line of the screen: cursor position and buffer
// statistics, or a temporary message.
type StatusBar struct {
	mu sync.RWMutex

	cursorPos types.Cursor
	lineCount int
	wordCount int

	tempMessage string
}

// New creates a status bar for a blank buffer.
func New() *StatusBar {
	return &StatusBar{
		cursorPos: types.Origin,
		lineCount: 1,
	}
}

// Subscribe keeps the status bar in sync with cursor and buffer events.
func (sb *StatusBar) Subscribe(em *event.Manager) {
	em.Subscribe(event.TypeCursorMoved, func(e event.Event) bool {
		if data, ok := e.Data.(event.CursorMovedData); ok {
			sb.SetCursorInfo(data.NewPosition)
		}
		return false
	})
	em.Subscribe(event.TypeBufferModified, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferModifiedData); ok {
			sb.SetBufferInfo(data.Lines)
		}
		return false
	})
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Cursor) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetBufferInfo recomputes the line and word counts.
func (sb *StatusBar) SetBufferInfo(lines []string) {
	words := 0
	for _, line := range lines {
		words += len(strings.Fields(line))
	}
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.lineCount = len(lines)
	sb.wordCount = words
}

// SetTemporaryMessage replaces the default text until ResetTemporaryMessage.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
}

// Text returns what the status bar currently shows and whether it is a
// temporary message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.tempMessage != "" {
		return sb.tempMessage, true
	}
	return fmt.Sprintf("Line: %d, Col: %d -- %d lines, %d words",
		sb.cursorPos.Row, sb.cursorPos.Col, sb.lineCount, sb.wordCount), false
}

// Draw renders the status bar on the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, isMessage := sb.Text()
	style := activeTheme.GetStyle(theme.StyleStatusBar)
	if isMessage {
		style = activeTheme.GetStyle(theme.StyleStatusBarMessage)
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
