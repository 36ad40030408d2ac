// internal/core/state.go
package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidepad/internal/types"
	json "github.com/goccy/go-json"
)

// State is one complete snapshot of the editor: the buffer and the cursor.
//
// Lines always holds at least one line. Cursor.Row is within [1, len(Lines)]
// and Cursor.Col within [1, length of the current line + 1], where lengths
// are counted in characters. Transitions never modify a State in place; they
// return a new State whose Lines do not share storage with the old one.
type State struct {
	Lines  []string     `json:"lines"`
	Cursor types.Cursor `json:"cursor"`
}

// New builds a state from explicit lines and cursor. The lines are copied.
// An empty line list becomes a single empty line, and the cursor is clamped
// onto the buffer so the result is always Valid.
func New(lines []string, cursor types.Cursor) State {
	s := State{Lines: []string{""}, Cursor: cursor}
	if len(lines) > 0 {
		s.Lines = cloneLines(lines)
	}
	if s.Cursor.Row < 1 {
		s.Cursor.Row = 1
	}
	if s.Cursor.Row > len(s.Lines) {
		s.Cursor.Row = len(s.Lines)
	}
	if s.Cursor.Col < 1 {
		s.Cursor.Col = 1
	}
	s.Cursor.Col = clampCol(s.CurrentLine(), s.Cursor.Col)
	return s
}

// Blank returns the startup state: one empty line, cursor at (1,1).
func Blank() State {
	return State{Lines: []string{""}, Cursor: types.Origin}
}

// Valid reports whether the buffer and cursor invariants hold.
func (s State) Valid() bool {
	if len(s.Lines) == 0 {
		return false
	}
	if s.Cursor.Row < 1 || s.Cursor.Row > len(s.Lines) {
		return false
	}
	return s.Cursor.Col >= 1 && s.Cursor.Col <= lineLen(s.Lines[s.Cursor.Row-1])+1
}

// LineCount returns the number of lines in the buffer.
func (s State) LineCount() int {
	return len(s.Lines)
}

// CurrentLine returns the line the cursor is on.
func (s State) CurrentLine() string {
	return s.Lines[s.Cursor.Row-1]
}

// Text joins the buffer with newlines.
func (s State) Text() string {
	return strings.Join(s.Lines, "\n")
}

// Equal reports whether two states hold the same buffer and cursor.
func (s State) Equal(other State) bool {
	if s.Cursor != other.Cursor || len(s.Lines) != len(other.Lines) {
		return false
	}
	for i := range s.Lines {
		if s.Lines[i] != other.Lines[i] {
			return false
		}
	}
	return true
}

func (s State) String() string {
	return fmt.Sprintf("State{lines=%q cursor=%s}", s.Lines, s.Cursor)
}

// MarshalSnapshot encodes the state as JSON for debug logging.
func (s State) MarshalSnapshot() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot produced by MarshalSnapshot. A
// snapshot whose cursor lies outside its buffer is rejected, not clamped.
func UnmarshalSnapshot(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to decode state snapshot: %w", err)
	}
	if len(s.Lines) == 0 {
		s.Lines = []string{""}
	}
	if !s.Valid() {
		return State{}, fmt.Errorf("invalid state snapshot: %s", s)
	}
	return s, nil
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// lineLen counts characters, not bytes. An invalid byte counts as one
// character.
func lineLen(line string) int {
	return utf8.RuneCountInString(line)
}

// byteOffset returns the byte index of the character at 0-based index n,
// or len(line) when n is past the end. Slicing at these offsets keeps
// invalid UTF-8 bytes intact.
func byteOffset(line string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for off := range line {
		if i == n {
			return off
		}
		i++
	}
	return len(line)
}
