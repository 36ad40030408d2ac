// internal/event/event.go
package event

import (
	"github.com/bethropolis/tidepad/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified // Fired when the lines of the state change
	TypeCursorMoved    // Fired when the cursor position changes

	// Input Events
	TypeKeyPressed // Raw key press, before decoding

	// Application Lifecycle Events
	TypeAppReady // Fired once the screen is up and the first frame is drawn
	TypeAppQuit  // Fired when the quit key is received, before the screen is closed
)

var typeNames = map[Type]string{
	TypeUnknown:        "Unknown",
	TypeBufferModified: "BufferModified",
	TypeCursorMoved:    "CursorMoved",
	TypeKeyPressed:     "KeyPressed",
	TypeAppReady:       "AppReady",
	TypeAppQuit:        "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// --- Specific Event Data Structures ---

// BufferModifiedData carries the new buffer contents.
type BufferModifiedData struct {
	Lines []string
}

// CursorMovedData contains the old and new cursor positions.
type CursorMovedData struct {
	OldPosition types.Cursor
	NewPosition types.Cursor
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData carries the number of keystrokes handled in the session.
type AppQuitData struct {
	Keystrokes int
}

// AppReadyData carries the initial screen size.
type AppReadyData struct {
	Width  int
	Height int
}
