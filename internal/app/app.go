// internal/app/app.go
package app

import (
	"fmt"

	"github.com/bethropolis/tidepad/internal/config"
	"github.com/bethropolis/tidepad/internal/core"
	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/input"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/statusbar"
	"github.com/bethropolis/tidepad/internal/theme"
	"github.com/bethropolis/tidepad/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// StartupMessage is shown in the status bar until the first edit or move.
const StartupMessage = "tidepad - Ctrl+C quit | Ctrl+P/N/F/B or arrows move"

// App owns the screen and the single current editor state.
type App struct {
	tuiManager     *tui.TUI
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar // nil when disabled
	activeTheme    *theme.Theme

	state      core.State
	debugState bool
	keystrokes int
}

// NewApp creates an application on the controlling terminal.
func NewApp(cfg *config.Config) (*App, error) {
	activeTheme, err := theme.Resolve(cfg.Editor.ThemeFile)
	if err != nil {
		return nil, fmt.Errorf("theme initialization failed: %w", err)
	}
	tuiManager, err := tui.New(activeTheme)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, tuiManager, activeTheme), nil
}

// NewAppWithScreen creates an application drawing on screen, which is
// initialized here. Tests pass a tcell.SimulationScreen.
func NewAppWithScreen(cfg *config.Config, screen tcell.Screen) (*App, error) {
	activeTheme, err := theme.Resolve(cfg.Editor.ThemeFile)
	if err != nil {
		return nil, fmt.Errorf("theme initialization failed: %w", err)
	}
	tuiManager, err := tui.NewWithScreen(screen, activeTheme)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, tuiManager, activeTheme), nil
}

func newApp(cfg *config.Config, tuiManager *tui.TUI, activeTheme *theme.Theme) *App {
	a := &App{
		tuiManager:     tuiManager,
		inputProcessor: input.NewInputProcessor(),
		eventManager:   event.NewManager(),
		activeTheme:    activeTheme,
		state:          core.Blank(),
		debugState:     cfg.Editor.DebugState,
	}

	if cfg.Editor.StatusBar {
		a.statusBar = statusbar.New()
		a.statusBar.Subscribe(a.eventManager)
		a.statusBar.SetTemporaryMessage(StartupMessage)
	}

	a.eventManager.Subscribe(event.TypeKeyPressed, a.handleKeyPressed)
	a.eventManager.Subscribe(event.TypeAppReady, a.handleAppReady)
	a.eventManager.Subscribe(event.TypeAppQuit, a.handleAppQuit)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)

	logger.Debugf("App: created (theme=%q, statusbar=%v, debug-state=%v)", activeTheme.Name, cfg.Editor.StatusBar, a.debugState)
	return a
}

// Run draws the blank buffer and processes keys until the quit key.
// Each key is decoded, applied and rendered before the next one is read.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	a.drawEditor()
	w, h := a.tuiManager.Size()
	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{Width: w, Height: h})

	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			logger.Warnf("App: screen closed before quit key")
			return nil
		}
		if a.handleEvent(ev) {
			return nil
		}
	}
}

// handleEvent processes one screen event and redraws. It reports whether
// the session ended.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch eventData := ev.(type) {
	case *tcell.EventResize:
		w, h := eventData.Size()
		logger.DebugTagf("render", "App: resized to %dx%d", w, h)
		a.tuiManager.Sync()
		a.drawEditor()
	case *tcell.EventKey:
		if a.HandleKey(eventData) {
			return true
		}
		a.drawEditor()
	}
	return false
}

// HandleKey applies one key to the current state and reports whether it
// ends the session. It does not draw.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	a.keystrokes++
	a.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := a.inputProcessor.ProcessEvent(ev)
	if actionEvent.Action == input.ActionUnknown {
		return false
	}

	prev := a.state
	next, quit := core.Apply(prev, actionEvent)
	if quit {
		a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{Keystrokes: a.keystrokes})
		return true
	}

	a.state = next
	a.notifyChanges(prev, next, actionEvent)
	return false
}

// notifyChanges dispatches the events describing the prev -> next transition.
func (a *App) notifyChanges(prev, next core.State, actionEvent input.ActionEvent) {
	if prev.Equal(next) {
		logger.DebugTagf("state", "App: %v left state unchanged", actionEvent.Action)
		return
	}

	if a.statusBar != nil {
		a.statusBar.ResetTemporaryMessage()
	}
	if prev.Cursor != next.Cursor {
		a.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{
			OldPosition: prev.Cursor,
			NewPosition: next.Cursor,
		})
	}
	if !linesEqual(prev.Lines, next.Lines) {
		a.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Lines: next.Lines})
	}

	if a.debugState {
		a.logSnapshot(actionEvent)
	}
}

func (a *App) logSnapshot(actionEvent input.ActionEvent) {
	snapshot, err := a.state.MarshalSnapshot()
	if err != nil {
		logger.Warnf("App: %v", err)
		return
	}
	logger.DebugTagf("state", "App: after %v: %s", actionEvent.Action, snapshot)
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// drawEditor redraws the buffer, cursor and status bar.
func (a *App) drawEditor() {
	reserved := 0
	if a.statusBar != nil {
		reserved = config.StatusBarHeight
	}

	tui.Render(a.tuiManager, a.state, a.activeTheme, reserved)
	if a.statusBar != nil {
		width, height := a.tuiManager.Size()
		a.statusBar.Draw(a.tuiManager.GetScreen(), width, height, a.activeTheme)
	}
	a.tuiManager.Show()
}

// State returns the current editor state.
func (a *App) State() core.State {
	return a.state
}

// GetEventManager exposes the event bus for additional subscribers.
func (a *App) GetEventManager() *event.Manager {
	return a.eventManager
}
