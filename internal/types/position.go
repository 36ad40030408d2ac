// internal/types/position.go
package types

import "fmt"

// Cursor is the insertion point in the buffer.
// Col and Row are 1-based, matching terminal coordinates.
// Col may be one past the last character of the line (the append position).
type Cursor struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Origin is the first position of any buffer.
var Origin = Cursor{Col: 1, Row: 1}

func (c Cursor) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}
