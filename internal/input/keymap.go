// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to editor actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps control keys that produce a character instead of an action.
type RuneKeymap map[tcell.Key]rune

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
}

// NewInputProcessor creates a processor with the default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the fixed key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Quit ---
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlQ] = ActionQuit

	// --- Emacs-style movement ---
	p.keymap[tcell.KeyCtrlP] = ActionMoveUp
	p.keymap[tcell.KeyCtrlN] = ActionMoveDown
	p.keymap[tcell.KeyCtrlF] = ActionMoveRight
	p.keymap[tcell.KeyCtrlB] = ActionMoveLeft

	// --- Arrow keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyLeft] = ActionMoveLeft

	p.keymap[tcell.KeyBackspace] = ActionBackspace
	p.keymap[tcell.KeyBackspace2] = ActionBackspace // Sent as DEL by most terminals

	// --- Keys that type a character ---
	p.runeKeymap[tcell.KeyEnter] = '\r'
	p.runeKeymap[tcell.KeyLF] = '\n'
	p.runeKeymap[tcell.KeyTab] = '\t'
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	if ev == nil {
		return ActionEvent{Action: ActionUnknown}
	}
	key := ev.Key()
	mod := ev.Modifiers()

	// Ctrl is implied by the control key codes themselves; Shift is harmless.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}
	mod &^= tcell.ModShift
	if mod != tcell.ModNone {
		return ActionEvent{Action: ActionUnknown}
	}

	if key == tcell.KeyRune {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	if r, ok := p.runeKeymap[key]; ok {
		return ActionEvent{Action: ActionInsertRune, Rune: r}
	}
	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}
	return ActionEvent{Action: ActionUnknown}
}
