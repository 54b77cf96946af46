// Package round contains the game's state machine: one Controller owns the
// round phase, the countdown target, the current grid and the elapsed-time
// accounting.
//
// Maintenance notes:
//   - Dispatch is meant to be called from a single goroutine (the
//     application command loop). Delayed work such as revealing a reshuffled
//     grid or clearing a wrong-cell flash is scheduled back into that loop as
//     a control.Command tagged with the round ID and grid sequence, and is
//     dropped on arrival if the round moved on.
//   - Elapsed time is always derived from the stored start instant or the
//     frozen paused value. The display tick only asks for a redraw.
//   - Every (phase, command) pair is defined. Commands that make no sense in
//     the current phase are ignored.
package round

import (
	"log/slog"
	"sync"
	"time"

	"SchulteTable/control"
	"SchulteTable/grid"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Phase is the active variant of the round state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// Mark is the transient visual state of a single cell.
type Mark int

const (
	MarkNeutral Mark = iota
	MarkClicked
	MarkWrong
)

// Renderer displays the round. Calls arrive on the command-loop goroutine.
type Renderer interface {
	ShowGrid(g grid.Grid, target int)
	ShowTarget(target int) // 0 means no round
	ShowElapsed(d time.Duration)
	MarkCell(index int, m Mark)
	ShowPaused(paused bool)
	ShowCompleted(elapsed time.Duration)
	Clear()
}

// Feedback plays cues. Fire and forget.
type Feedback interface {
	Correct()
	Incorrect()
	Haptic()
}

// Scheduler owns the recurring display tick and one-shot delayed commands.
// StopTicker must be safe to call when no ticker runs.
type Scheduler interface {
	StartTicker()
	StopTicker()
	After(d time.Duration, cmd control.Command) (cancel func())
}

// Options tunes the display delays.
type Options struct {
	RevealDelay time.Duration // correct click -> reshuffled grid on screen
	WrongFlash  time.Duration // how long a wrong mark stays
}

// Snapshot is a consistent copy of the round state.
type Snapshot struct {
	Phase   Phase
	Round   uuid.UUID
	Size    grid.Size
	Target  int
	Elapsed time.Duration
	Grid    grid.Grid
}

// Controller is the sole mutator of round state.
type Controller struct {
	clock  clockwork.Clock
	gen    *grid.Generator
	view   Renderer
	fx     Feedback
	sched  Scheduler
	opts   Options
	logger *slog.Logger

	mu          sync.RWMutex
	phase       Phase
	id          uuid.UUID
	size        grid.Size
	target      int
	start       time.Time
	accumulated time.Duration
	final       time.Duration

	current   grid.Grid
	seq       int
	shown     grid.Grid // what the player is looking at
	shownSeq  int
	revealing func()
	flashes   map[int]func()
}

// New wires a controller in the Idle phase.
func New(clock clockwork.Clock, gen *grid.Generator, view Renderer, fx Feedback, sched Scheduler, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		clock:   clock,
		gen:     gen,
		view:    view,
		fx:      fx,
		sched:   sched,
		opts:    opts,
		logger:  logger,
		flashes: make(map[int]func()),
	}
}

// Dispatch applies one command.
func (c *Controller) Dispatch(cmd control.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch cmd.Type {
	case control.CmdStart:
		c.startRound(cmd.Size)
	case control.CmdCellTapped:
		c.cellTapped(cmd.Index, cmd.Number)
	case control.CmdPause:
		c.pause()
	case control.CmdResume:
		c.resume()
	case control.CmdTogglePause:
		if c.phase == PhasePaused {
			c.resume()
		} else {
			c.pause()
		}
	case control.CmdReset:
		c.reset()
	case control.CmdRestart:
		if c.phase == PhaseCompleted {
			c.reset()
		}
	case control.CmdTick:
		if c.phase == PhaseRunning {
			c.view.ShowElapsed(c.elapsedLocked())
		}
	case control.CmdRevealGrid:
		if c.phase == PhaseRunning && cmd.Round == c.id && cmd.Seq == c.seq {
			c.revealing = nil
			c.reveal()
		}
	case control.CmdClearMark:
		if c.phase != PhaseIdle && cmd.Round == c.id && cmd.Seq == c.shownSeq {
			delete(c.flashes, cmd.Index)
			c.view.MarkCell(cmd.Index, MarkNeutral)
		}
	}
}

func (c *Controller) startRound(size grid.Size) {
	if c.phase != PhaseIdle || !size.Valid() {
		return
	}
	c.phase = PhaseRunning
	c.id = uuid.New()
	c.size = size
	c.target = size.Cells()
	c.start = c.clock.Now()
	c.accumulated = 0
	c.final = 0

	c.current = c.gen.Generate(size)
	c.seq++
	c.reveal()
	c.view.ShowTarget(c.target)
	c.view.ShowElapsed(0)
	c.view.ShowPaused(false)
	c.sched.StartTicker()

	c.logger.Info("round started", "round", c.id, "size", int(size))
}

func (c *Controller) cellTapped(index, number int) {
	if c.phase != PhaseRunning {
		return
	}
	// A label that no longer matches the board is a stale click.
	if number != c.target || c.shown.At(index) != number {
		c.wrong(index)
		return
	}

	c.view.MarkCell(index, MarkClicked)
	c.fx.Correct()

	if c.target == 1 {
		c.complete()
		return
	}

	c.target--
	c.view.ShowTarget(c.target)
	c.current = c.gen.Generate(c.size)
	c.seq++

	c.cancelReveal()
	if c.opts.RevealDelay <= 0 {
		c.reveal()
		return
	}
	c.revealing = c.sched.After(c.opts.RevealDelay, control.Command{
		Type:  control.CmdRevealGrid,
		Round: c.id,
		Seq:   c.seq,
	})
}

func (c *Controller) wrong(index int) {
	c.fx.Incorrect()
	c.fx.Haptic()
	if index < 0 || index >= len(c.shown.Numbers) {
		return
	}

	c.view.MarkCell(index, MarkWrong)
	if cancel, ok := c.flashes[index]; ok {
		cancel()
	}
	if c.opts.WrongFlash <= 0 {
		return
	}
	c.flashes[index] = c.sched.After(c.opts.WrongFlash, control.Command{
		Type:  control.CmdClearMark,
		Index: index,
		Round: c.id,
		Seq:   c.shownSeq,
	})
}

func (c *Controller) complete() {
	c.final = c.clock.Since(c.start)
	c.target = 0
	c.phase = PhaseCompleted
	c.sched.StopTicker()
	c.cancelPending()

	c.view.ShowTarget(0)
	c.view.ShowElapsed(c.final)
	c.view.ShowCompleted(c.final)

	c.logger.Info("round completed", "round", c.id, "size", int(c.size), "elapsed", c.final)
}

func (c *Controller) pause() {
	if c.phase != PhaseRunning {
		return
	}
	c.accumulated = c.clock.Since(c.start)
	c.phase = PhasePaused
	c.sched.StopTicker()
	c.cancelReveal()

	c.view.ShowPaused(true)
	c.view.ShowElapsed(c.accumulated)
	c.logger.Debug("round paused", "round", c.id, "elapsed", c.accumulated)
}

func (c *Controller) resume() {
	if c.phase != PhasePaused {
		return
	}
	c.start = c.clock.Now().Add(-c.accumulated)
	c.phase = PhaseRunning
	c.sched.StartTicker()

	// A reveal cancelled by pause is shown right away.
	if c.shownSeq != c.seq {
		c.reveal()
	}
	c.view.ShowPaused(false)
	c.view.ShowElapsed(c.accumulated)
	c.logger.Debug("round resumed", "round", c.id, "elapsed", c.accumulated)
}

func (c *Controller) reset() {
	if c.phase == PhaseIdle {
		return
	}
	c.sched.StopTicker()
	c.cancelPending()
	c.logger.Info("round reset", "round", c.id, "phase", c.phase.String())

	c.phase = PhaseIdle
	c.id = uuid.Nil
	c.size = 0
	c.target = 0
	c.start = time.Time{}
	c.accumulated = 0
	c.final = 0
	c.current = grid.Grid{}
	c.shown = grid.Grid{}
	c.shownSeq = c.seq

	c.view.Clear()
}

func (c *Controller) reveal() {
	c.shown = c.current
	c.shownSeq = c.seq
	for i, cancel := range c.flashes {
		cancel()
		delete(c.flashes, i)
	}
	c.view.ShowGrid(c.shown, c.target)
}

func (c *Controller) cancelReveal() {
	if c.revealing != nil {
		c.revealing()
		c.revealing = nil
	}
}

func (c *Controller) cancelPending() {
	c.cancelReveal()
	for i, cancel := range c.flashes {
		cancel()
		delete(c.flashes, i)
	}
}

func (c *Controller) elapsedLocked() time.Duration {
	switch c.phase {
	case PhaseRunning:
		return c.clock.Since(c.start)
	case PhasePaused:
		return c.accumulated
	case PhaseCompleted:
		return c.final
	}
	return 0
}

// Elapsed returns the round time: live while running, frozen while paused,
// final once completed and zero when idle.
func (c *Controller) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.elapsedLocked()
}

// Snapshot returns a consistent copy of the round state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	numbers := make([]int, len(c.current.Numbers))
	copy(numbers, c.current.Numbers)
	return Snapshot{
		Phase:   c.phase,
		Round:   c.id,
		Size:    c.size,
		Target:  c.target,
		Elapsed: c.elapsedLocked(),
		Grid:    grid.Grid{Size: c.current.Size, Numbers: numbers},
	}
}

// Seconds truncates d to whole seconds for display.
func Seconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
