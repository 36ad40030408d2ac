// internal/core/transitions.go
package core

import (
	"github.com/bethropolis/tidepad/internal/input"
)

// Apply computes the state that follows ev. The boolean is true when ev
// terminates the session; the returned state is then the unchanged input.
func Apply(s State, ev input.ActionEvent) (State, bool) {
	switch ev.Action {
	case input.ActionQuit:
		return s, true
	case input.ActionMoveUp:
		return s.MoveUp(), false
	case input.ActionMoveDown:
		return s.MoveDown(), false
	case input.ActionMoveLeft:
		return s.MoveLeft(), false
	case input.ActionMoveRight:
		return s.MoveRight(), false
	case input.ActionBackspace:
		return s.Backspace(), false
	case input.ActionInsertRune:
		if input.IsLineBreak(ev.Rune) {
			return s.Newline(), false
		}
		return s.Insert(ev.Rune), false
	}
	return s, false
}

// MoveUp moves to the previous line, clamping the column to its end.
func (s State) MoveUp() State {
	next := New(s.Lines, s.Cursor)
	if next.Cursor.Row > 1 {
		next.Cursor.Row--
		next.Cursor.Col = clampCol(next.CurrentLine(), next.Cursor.Col)
	}
	return next
}

// MoveDown moves to the next line, clamping the column to its end.
func (s State) MoveDown() State {
	next := New(s.Lines, s.Cursor)
	if next.Cursor.Row < len(next.Lines) {
		next.Cursor.Row++
		next.Cursor.Col = clampCol(next.CurrentLine(), next.Cursor.Col)
	}
	return next
}

// MoveRight advances one character, at most to the append position.
func (s State) MoveRight() State {
	next := New(s.Lines, s.Cursor)
	if next.Cursor.Col <= lineLen(next.CurrentLine()) {
		next.Cursor.Col++
	}
	return next
}

// MoveLeft steps back one character. It does not wrap to the previous line.
func (s State) MoveLeft() State {
	next := New(s.Lines, s.Cursor)
	if next.Cursor.Col > 1 {
		next.Cursor.Col--
	}
	return next
}

// Backspace deletes the character left of the cursor, or joins the current
// line onto the previous one when the cursor is at the start of a line.
func (s State) Backspace() State {
	next := New(s.Lines, s.Cursor)
	row := next.Cursor.Row - 1

	switch {
	case next.Cursor.Col > 1:
		next.Cursor.Col--
		line := next.Lines[row]
		start := byteOffset(line, next.Cursor.Col-1)
		end := byteOffset(line, next.Cursor.Col)
		next.Lines[row] = line[:start] + line[end:]
	case row > 0:
		prev := next.Lines[row-1]
		next.Lines[row-1] = prev + next.Lines[row]
		next.Lines = append(next.Lines[:row], next.Lines[row+1:]...)
		next.Cursor.Col = lineLen(prev) + 1
		next.Cursor.Row--
	}
	return next
}

// Newline splits the current line at the cursor and moves to the start of
// the second half.
func (s State) Newline() State {
	next := New(s.Lines, s.Cursor)
	row := next.Cursor.Row - 1
	line := next.Lines[row]
	split := byteOffset(line, next.Cursor.Col-1)

	lines := make([]string, 0, len(next.Lines)+1)
	lines = append(lines, next.Lines[:row]...)
	lines = append(lines, line[:split], line[split:])
	lines = append(lines, next.Lines[row+1:]...)

	next.Lines = lines
	next.Cursor.Col = 1
	next.Cursor.Row++
	return next
}

// Insert places r at the cursor and advances past it. Line breaks are routed
// to Newline so that no line ever holds one.
func (s State) Insert(r rune) State {
	if input.IsLineBreak(r) {
		return s.Newline()
	}
	next := New(s.Lines, s.Cursor)
	row := next.Cursor.Row - 1
	line := next.Lines[row]
	pos := byteOffset(line, next.Cursor.Col-1)
	next.Lines[row] = line[:pos] + string(r) + line[pos:]
	next.Cursor.Col++
	return next
}

// clampCol fits col onto line after a vertical move.
func clampCol(line string, col int) int {
	n := lineLen(line)
	if n == 0 {
		return 1
	}
	if col > n+1 {
		return n + 1
	}
	return col
}
