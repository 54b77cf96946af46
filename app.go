// Package main contains the application wiring and the AppManager which
// coordinates the round controller, the display tick, audio cues and the UI.
//
// Maintenance notes / tips:
//   - Concurrency model: a single command-loop goroutine (see `commandLoop`)
//     is the only caller of round.Controller.Dispatch. UI taps, keyboard
//     shortcuts, the display ticker and delayed one-shot commands all reach
//     the controller by posting a control.Command to `cmdCh`.
//   - `cmdCh` is buffered. EnqueueCommand drops a command after a short
//     timeout rather than blocking the UI; a dropped tick only delays a
//     redraw and a dropped reveal is redone on the next correct click or
//     resume.
//   - Delayed commands carry the round ID and grid sequence they were
//     scheduled for. Cancelling their timer is best effort: one that already
//     fired is discarded by the controller on arrival.
package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"SchulteTable/config"
	"SchulteTable/control"
	"SchulteTable/grid"
	"SchulteTable/round"
	"SchulteTable/ui"

	"fyne.io/fyne/v2"
	"github.com/jonboulle/clockwork"
)

// AppManager is the main application struct, holding all state.
type AppManager struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	view       *ui.View
	round      *round.Controller
	settings   *config.Settings
	logger     *slog.Logger
	clock      clockwork.Clock

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc

	tickLock   sync.Mutex
	tickCancel context.CancelFunc

	themeLock sync.Mutex
	darkMode  bool
}

// NewAppManager creates a new application manager and starts its command loop.
func NewAppManager(fyneApp fyne.App, settings *config.Settings, fx round.Feedback, clock clockwork.Clock, logger *slog.Logger) *AppManager {
	a := &AppManager{
		fyneApp:  fyneApp,
		settings: settings,
		logger:   logger,
		clock:    clock,
		darkMode: settings.DarkMode,
	}
	a.view = ui.NewView(a, settings.HideSolved, settings.DarkMode)
	a.round = round.New(clock, grid.NewGenerator(nil), a.view, fx, a, round.Options{
		RevealDelay: settings.RevealDelay,
		WrongFlash:  settings.WrongFlash,
	}, logger)

	// Use a larger buffer for the command channel to reduce drops under brief bursts.
	a.cmdCh = make(chan control.Command, 256)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	return a
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	// Try to enqueue the command but avoid blocking UI indefinitely. If the
	// channel stays full for the configured short timeout, drop and log.
	select {
	case a.cmdCh <- cmd:
	case <-a.cmdCtx.Done():
	case <-time.After(150 * time.Millisecond):
		a.logger.Warn("EnqueueCommand timeout: dropping command", "command", cmd.Type.String())
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			switch cmd.Type {
			case control.CmdToggleTheme:
				a.toggleTheme()
			default:
				a.round.Dispatch(cmd)
			}
			// send reply if requested
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- nil:
				default:
				}
			}
		}
	}
}

// StartTicker begins posting display ticks at the configured interval.
func (a *AppManager) StartTicker() {
	a.tickLock.Lock()
	defer a.tickLock.Unlock()
	if a.tickCancel != nil {
		a.tickCancel()
	}
	ctx, cancel := context.WithCancel(a.cmdCtx)
	a.tickCancel = cancel
	go a.tick(ctx, a.clock.NewTicker(a.settings.TickInterval))
}

// StopTicker stops the display tick. Calling it with no ticker running is a no-op.
func (a *AppManager) StopTicker() {
	a.tickLock.Lock()
	defer a.tickLock.Unlock()
	if a.tickCancel != nil {
		a.tickCancel()
		a.tickCancel = nil
	}
}

func (a *AppManager) tick(ctx context.Context, ticker clockwork.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			// A tick that raced a stop is dropped.
			if ctx.Err() != nil {
				return
			}
			a.EnqueueCommand(control.Command{Type: control.CmdTick})
		}
	}
}

// After posts cmd to the command loop once d has passed, unless cancelled first.
func (a *AppManager) After(d time.Duration, cmd control.Command) func() {
	t := a.clock.AfterFunc(d, func() {
		a.EnqueueCommand(cmd)
	})
	return func() { t.Stop() }
}

func (a *AppManager) toggleTheme() {
	a.themeLock.Lock()
	a.darkMode = !a.darkMode
	dark := a.darkMode
	a.themeLock.Unlock()

	a.logger.Debug("theme toggled", "dark", dark)
	a.view.ApplyTheme(a.fyneApp, dark)
}

// IsDarkMode reports the current theme variant.
func (a *AppManager) IsDarkMode() bool {
	a.themeLock.Lock()
	defer a.themeLock.Unlock()
	return a.darkMode
}

// HandleKeyRune handles key presses for the application.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case ' ':
		a.EnqueueCommand(control.Command{Type: control.CmdTogglePause})
	case 'r', 'R':
		a.EnqueueCommand(control.Command{Type: control.CmdReset})
	case 't', 'T':
		a.EnqueueCommand(control.Command{Type: control.CmdToggleTheme})
	case '3':
		a.EnqueueCommand(control.Start(grid.Small))
	case '5':
		a.EnqueueCommand(control.Start(grid.Large))
	}
}

// Shutdown attempts to gracefully stop the AppManager command loop. It
// cancels the internal context and allows background goroutines to exit.
func (a *AppManager) Shutdown() {
	a.StopTicker()
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
}
