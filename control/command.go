// Package control defines the command messages the UI, keyboard and timers
// post to the application command loop. Every round mutation travels as a
// Command so the loop is the only goroutine that touches round state.
package control

import (
	"strconv"
	"strings"

	"SchulteTable/grid"

	"github.com/google/uuid"
)

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdStart CommandType = iota
	CmdCellTapped
	CmdPause
	CmdResume
	CmdTogglePause
	CmdReset
	CmdRestart
	CmdToggleTheme

	// Posted by the scheduler, never by the UI.
	CmdTick
	CmdRevealGrid
	CmdClearMark
)

var commandNames = map[CommandType]string{
	CmdStart:       "start",
	CmdCellTapped:  "cell-tapped",
	CmdPause:       "pause",
	CmdResume:      "resume",
	CmdTogglePause: "toggle-pause",
	CmdReset:       "reset",
	CmdRestart:     "restart",
	CmdToggleTheme: "toggle-theme",
	CmdTick:        "tick",
	CmdRevealGrid:  "reveal-grid",
	CmdClearMark:   "clear-mark",
}

func (t CommandType) String() string {
	if name, ok := commandNames[t]; ok {
		return name
	}
	return "unknown"
}

// Command is the message sent to AppManager.commandLoop. The optional Reply
// channel is signalled once the command has been applied, which lets the UI
// refresh from a consistent snapshot.
type Command struct {
	Type CommandType

	Size   grid.Size // CmdStart
	Index  int       // CmdCellTapped, CmdClearMark: board position
	Number int       // CmdCellTapped: label the player saw

	// Round and Seq identify the round and grid generation a delayed
	// command was scheduled for, so it can be dropped once stale.
	Round uuid.UUID
	Seq   int

	Reply chan error
}

// Start requests a new round on a board of the given size.
func Start(size grid.Size) Command {
	return Command{Type: CmdStart, Size: size}
}

// CellTapped builds a click on the cell at index showing label. A label
// that is not a number yields 0, which never matches a target.
func CellTapped(index int, label string) Command {
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil || n < 0 {
		n = 0
	}
	return Command{Type: CmdCellTapped, Index: index, Number: n}
}
