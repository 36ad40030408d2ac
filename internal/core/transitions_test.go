package core

import (
	"math/rand"
	"testing"

	"github.com/bethropolis/tidepad/internal/input"
	"github.com/bethropolis/tidepad/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(col, row int) types.Cursor {
	return types.Cursor{Col: col, Row: row}
}

func insert(r rune) input.ActionEvent {
	return input.ActionEvent{Action: input.ActionInsertRune, Rune: r}
}

func act(a input.Action) input.ActionEvent {
	return input.ActionEvent{Action: a}
}

func applyAll(t *testing.T, s State, evs ...input.ActionEvent) State {
	t.Helper()
	for _, ev := range evs {
		var quit bool
		s, quit = Apply(s, ev)
		require.False(t, quit, "unexpected quit on %v", ev.Action)
		require.True(t, s.Valid(), "invariants broken after %v: %s", ev.Action, s)
	}
	return s
}

func TestBlank(t *testing.T) {
	s := Blank()
	assert.Equal(t, []string{""}, s.Lines)
	assert.Equal(t, at(1, 1), s.Cursor)
	assert.True(t, s.Valid())
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name       string
		start      State
		events     []input.ActionEvent
		wantLines  []string
		wantCursor types.Cursor
	}{
		{
			name:       "type into blank",
			start:      Blank(),
			events:     []input.ActionEvent{insert('h'), insert('i')},
			wantLines:  []string{"hi"},
			wantCursor: at(3, 1),
		},
		{
			name:       "newline at end of line",
			start:      New([]string{"hi"}, at(3, 1)),
			events:     []input.ActionEvent{insert('\r')},
			wantLines:  []string{"hi", ""},
			wantCursor: at(1, 2),
		},
		{
			name:       "backspace on empty second line",
			start:      New([]string{"hi", ""}, at(1, 2)),
			events:     []input.ActionEvent{act(input.ActionBackspace)},
			wantLines:  []string{"hi"},
			wantCursor: at(3, 1),
		},
		{
			name:       "backspace joins lines",
			start:      New([]string{"ab", "cd"}, at(1, 2)),
			events:     []input.ActionEvent{act(input.ActionBackspace)},
			wantLines:  []string{"abcd"},
			wantCursor: at(3, 1),
		},
		{
			name:  "movement on blank is a no-op",
			start: Blank(),
			events: []input.ActionEvent{
				act(input.ActionMoveUp), act(input.ActionMoveDown),
				act(input.ActionMoveLeft), act(input.ActionMoveRight),
			},
			wantLines:  []string{""},
			wantCursor: at(1, 1),
		},
		{
			name:       "line feed also splits",
			start:      New([]string{"abcd"}, at(3, 1)),
			events:     []input.ActionEvent{insert('\n')},
			wantLines:  []string{"ab", "cd"},
			wantCursor: at(1, 2),
		},
		{
			name:       "insert in the middle",
			start:      New([]string{"ac"}, at(2, 1)),
			events:     []input.ActionEvent{insert('b')},
			wantLines:  []string{"abc"},
			wantCursor: at(3, 1),
		},
		{
			name:       "backspace in the middle",
			start:      New([]string{"abc"}, at(3, 1)),
			events:     []input.ActionEvent{act(input.ActionBackspace)},
			wantLines:  []string{"ac"},
			wantCursor: at(2, 1),
		},
		{
			name:       "backspace at origin is a no-op",
			start:      New([]string{"abc", "d"}, at(1, 1)),
			events:     []input.ActionEvent{act(input.ActionBackspace)},
			wantLines:  []string{"abc", "d"},
			wantCursor: at(1, 1),
		},
		{
			name:       "newline at column one",
			start:      New([]string{"abc"}, at(1, 1)),
			events:     []input.ActionEvent{insert('\r')},
			wantLines:  []string{"", "abc"},
			wantCursor: at(1, 2),
		},
		{
			name:       "move up clamps to shorter line",
			start:      New([]string{"ab", "abcdef"}, at(6, 2)),
			events:     []input.ActionEvent{act(input.ActionMoveUp)},
			wantLines:  []string{"ab", "abcdef"},
			wantCursor: at(3, 1),
		},
		{
			name:       "move down onto empty line resets column",
			start:      New([]string{"abc", ""}, at(3, 1)),
			events:     []input.ActionEvent{act(input.ActionMoveDown)},
			wantLines:  []string{"abc", ""},
			wantCursor: at(1, 2),
		},
		{
			name:       "move down keeps column that fits",
			start:      New([]string{"abc", "abcdef"}, at(2, 1)),
			events:     []input.ActionEvent{act(input.ActionMoveDown)},
			wantLines:  []string{"abc", "abcdef"},
			wantCursor: at(2, 2),
		},
		{
			name:       "move right stops at append position",
			start:      New([]string{"ab"}, at(2, 1)),
			events:     []input.ActionEvent{act(input.ActionMoveRight), act(input.ActionMoveRight)},
			wantLines:  []string{"ab"},
			wantCursor: at(3, 1),
		},
		{
			name:       "move left does not wrap",
			start:      New([]string{"ab", "cd"}, at(1, 2)),
			events:     []input.ActionEvent{act(input.ActionMoveLeft)},
			wantLines:  []string{"ab", "cd"},
			wantCursor: at(1, 2),
		},
		{
			name:       "move right does not wrap",
			start:      New([]string{"ab", "cd"}, at(3, 1)),
			events:     []input.ActionEvent{act(input.ActionMoveRight)},
			wantLines:  []string{"ab", "cd"},
			wantCursor: at(3, 1),
		},
		{
			name:       "unknown event is ignored",
			start:      New([]string{"ab"}, at(2, 1)),
			events:     []input.ActionEvent{act(input.ActionUnknown)},
			wantLines:  []string{"ab"},
			wantCursor: at(2, 1),
		},
		{
			name:       "multi-byte characters are edited whole",
			start:      New([]string{"héllo"}, at(3, 1)),
			events:     []input.ActionEvent{act(input.ActionBackspace), insert('ü')},
			wantLines:  []string{"hüllo"},
			wantCursor: at(3, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyAll(t, tt.start, tt.events...)
			assert.Equal(t, tt.wantLines, got.Lines)
			assert.Equal(t, tt.wantCursor, got.Cursor)
		})
	}
}

func TestApplyQuit(t *testing.T) {
	s := New([]string{"abc"}, at(2, 1))
	next, quit := Apply(s, act(input.ActionQuit))
	assert.True(t, quit)
	assert.True(t, s.Equal(next))
}

func TestTransitionsDoNotAlias(t *testing.T) {
	lines := []string{"ab", "cd"}
	s := New(lines, at(2, 2))

	ops := map[string]func(State) State{
		"MoveUp":    State.MoveUp,
		"MoveDown":  State.MoveDown,
		"MoveLeft":  State.MoveLeft,
		"MoveRight": State.MoveRight,
		"Backspace": State.Backspace,
		"Newline":   State.Newline,
		"Insert":    func(s State) State { return s.Insert('x') },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			next := op(s)
			require.NotEmpty(t, next.Lines)
			next.Lines[0] = "changed"
			assert.Equal(t, []string{"ab", "cd"}, s.Lines)
			assert.Equal(t, at(2, 2), s.Cursor)
		})
	}
	assert.Equal(t, []string{"ab", "cd"}, lines, "New must copy its input")
}

// randomState walks a random key sequence from Blank so that every state it
// returns is reachable.
func randomState(rng *rand.Rand, steps int) State {
	s := Blank()
	for i := 0; i < steps; i++ {
		s, _ = Apply(s, randomEvent(rng))
	}
	return s
}

var alphabet = []rune("ab é\t漢z")

func randomEvent(rng *rand.Rand) input.ActionEvent {
	switch rng.Intn(8) {
	case 0:
		return act(input.ActionMoveUp)
	case 1:
		return act(input.ActionMoveDown)
	case 2:
		return act(input.ActionMoveLeft)
	case 3:
		return act(input.ActionMoveRight)
	case 4:
		return act(input.ActionBackspace)
	case 5:
		return insert('\r')
	default:
		return insert(alphabet[rng.Intn(len(alphabet))])
	}
}

func TestInvariantsHoldOnRandomWalks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for walk := 0; walk < 200; walk++ {
		s := Blank()
		for step := 0; step < 100; step++ {
			ev := randomEvent(rng)
			next, quit := Apply(s, ev)
			require.False(t, quit)
			require.True(t, next.Valid(), "from %s via %v got %s", s, ev.Action, next)
			s = next
		}
	}
}

func TestMoveLeftRightRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		s := randomState(rng, 40)
		n := lineLen(s.CurrentLine())
		if s.Cursor.Col == 1 || s.Cursor.Col == n+1 {
			continue
		}
		got := s.MoveLeft().MoveRight()
		assert.True(t, s.Equal(got), "round trip from %s gave %s", s, got)
	}
}

func TestInsertBackspaceRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		s := randomState(rng, 40)
		c := alphabet[rng.Intn(len(alphabet))]
		got := s.Insert(c).Backspace()
		assert.True(t, s.Equal(got), "insert %q then backspace from %s gave %s", c, s, got)
	}
}

func TestNewlineBackspaceRoundTrip(t *testing.T) {
	line := "hello, 世界"
	for col := 1; col <= lineLen(line)+1; col++ {
		s := New([]string{line}, at(col, 1))
		split := s.Newline()
		require.Len(t, split.Lines, 2)
		assert.Equal(t, at(1, 2), split.Cursor)
		got := split.Backspace()
		assert.True(t, s.Equal(got), "column %d: got %s", col, got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New([]string{"ab", "漢字"}, at(2, 2))
	data, err := s.MarshalSnapshot()
	require.NoError(t, err)
	assert.JSONEq(t, `{"lines":["ab","漢字"],"cursor":{"col":2,"row":2}}`, string(data))

	got, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}

func TestUnmarshalSnapshotRejectsInvalidCursor(t *testing.T) {
	_, err := UnmarshalSnapshot([]byte(`{"lines":["ab"],"cursor":{"col":5,"row":1}}`))
	assert.Error(t, err)

	_, err = UnmarshalSnapshot([]byte(`not json`))
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	assert.False(t, State{}.Valid())
	assert.False(t, State{Lines: []string{"a"}, Cursor: at(3, 1)}.Valid())
	assert.False(t, State{Lines: []string{"a"}, Cursor: at(1, 2)}.Valid())
	assert.False(t, State{Lines: []string{"a"}, Cursor: at(0, 1)}.Valid())
	assert.True(t, State{Lines: []string{"a"}, Cursor: at(2, 1)}.Valid())
	assert.True(t, State{Lines: []string{"漢"}, Cursor: at(2, 1)}.Valid())
}

func TestNewClampsCursor(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		cursor types.Cursor
		want   types.Cursor
	}{
		{"column past end", []string{"ab"}, at(9, 1), at(3, 1)},
		{"row past end", []string{"ab", "c"}, at(2, 7), at(2, 2)},
		{"zero cursor", []string{"ab"}, at(0, 0), at(1, 1)},
		{"empty lines", nil, at(4, 4), at(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.lines, tt.cursor)
			assert.True(t, s.Valid())
			assert.Equal(t, tt.want, s.Cursor)
		})
	}

	assert.Equal(t, []string{"a"}, New([]string{"ab"}, at(9, 1)).Backspace().Lines)
}

func TestEditsKeepInvalidUTF8Bytes(t *testing.T) {
	s := New([]string{"a\xffb"}, at(2, 1))
	assert.Equal(t, 3, lineLen(s.CurrentLine()))

	inserted := s.Insert('x')
	assert.Equal(t, []string{"ax\xffb"}, inserted.Lines)
	assert.Equal(t, []string{"a\xffb"}, inserted.Backspace().Lines)

	assert.Equal(t, []string{"ab"}, s.MoveRight().Backspace().Lines)

	split := s.MoveRight().Newline()
	assert.Equal(t, []string{"a\xff", "b"}, split.Lines)
	assert.Equal(t, []string{"a\xffb"}, split.Backspace().Lines)
}
