package app

import (
	"github.com/bethropolis/tidepad/internal/event"
	"github.com/bethropolis/tidepad/internal/input"
	"github.com/bethropolis/tidepad/internal/logger"
)

// handleKeyPressed traces every raw key and the action it decodes to.
func (a *App) handleKeyPressed(e event.Event) bool {
	data, ok := e.Data.(event.KeyPressedData)
	if !ok || data.KeyEvent == nil {
		return false
	}
	actionEvent := a.inputProcessor.ProcessEvent(data.KeyEvent)
	if actionEvent.Action == input.ActionUnknown {
		logger.DebugTagf("input", "App: ignoring key %s", data.KeyEvent.Name())
		return false
	}
	logger.DebugTagf("input", "App: key %s -> %v", data.KeyEvent.Name(), actionEvent.Action)
	return false // Not consumed
}

// handleAppReady records the initial screen size.
func (a *App) handleAppReady(e event.Event) bool {
	if data, ok := e.Data.(event.AppReadyData); ok {
		logger.Infof("App: ready on a %dx%d screen", data.Width, data.Height)
	}
	return false // Not consumed
}

// handleAppQuit logs a short session summary.
func (a *App) handleAppQuit(e event.Event) bool {
	if data, ok := e.Data.(event.AppQuitData); ok {
		logger.Infof("App: quitting after %d keystroke(s), %d line(s) in buffer", data.Keystrokes, a.state.LineCount())
	}
	return false // Not consumed
}

// handleBufferModified warns once the buffer no longer fits on screen; the
// renderer does not scroll.
func (a *App) handleBufferModified(e event.Event) bool {
	data, ok := e.Data.(event.BufferModifiedData)
	if !ok {
		logger.Warnf("App: Received BufferModified event with unexpected data type: %T", e.Data)
		return false
	}
	_, height := a.tuiManager.Size()
	if a.statusBar != nil {
		height--
	}
	if len(data.Lines) == height+1 {
		logger.Warnf("App: buffer has %d lines, more than the %d visible rows", len(data.Lines), height)
	}
	return false // Not consumed
}
