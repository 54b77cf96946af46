package ui

import (
	"testing"
	"time"

	"SchulteTable/control"
	"SchulteTable/grid"
	"SchulteTable/i18n"
	"SchulteTable/round"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	cmds  []control.Command
	runes []rune
}

func (r *recorder) EnqueueCommand(cmd control.Command) { r.cmds = append(r.cmds, cmd) }
func (r *recorder) HandleKeyRune(x rune) { r.runes = append(r.runes, x) }

func (r *recorder) last(t *testing.T) control.Command {
	t.Helper()
	require.NotEmpty(t, r.cmds)
	return r.cmds[len(r.cmds)-1]
}

func newTestView(t *testing.T, hideSolved bool) (*View, *recorder) {
	t.Helper()
	test.NewTempApp(t)
	i18n.SetLang("en")
	rec := &recorder{}
	return NewView(rec, hideSolved, false), rec
}

var board = grid.Grid{Size: grid.Small, Numbers: []int{4, 9, 2, 3, 5, 7, 8, 1, 6}}

func TestStartButtonsEnqueueStart(t *testing.T) {
	v, rec := newTestView(t, false)

	test.Tap(v.startSmall)
	assert.Equal(t, control.Start(grid.Small), rec.last(t))
	test.Tap(v.startLarge)
	assert.Equal(t, control.Start(grid.Large), rec.last(t))
}

func TestShowGridLabelsCellsInOrder(t *testing.T) {
	v, rec := newTestView(t, false)

	v.ShowGrid(board, 9)

	require.Len(t, v.Cells(), 9)
	for i, c := range v.Cells() {
		assert.Equal(t, board.Numbers[i], mustAtoi(t, c.Label()))
	}
	assert.True(t, v.game.Visible())
	assert.False(t, v.dashboard.Visible())
	assert.False(t, v.pauseButton.Disabled())

	test.Tap(v.Cells()[1].tap)
	cmd := rec.last(t)
	assert.Equal(t, control.CmdCellTapped, cmd.Type)
	assert.Equal(t, 1, cmd.Index)
	assert.Equal(t, 9, cmd.Number)
}

func TestHideSolvedBlanksNumbersAboveTarget(t *testing.T) {
	v, rec := newTestView(t, true)

	v.ShowGrid(board, 6)

	assert.Equal(t, "", v.Cells()[1].Label()) // 9
	assert.Equal(t, "", v.Cells()[5].Label()) // 7
	assert.Equal(t, "6", v.Cells()[8].Label())

	test.Tap(v.Cells()[1].tap)
	assert.Equal(t, 0, rec.last(t).Number)
}

func TestMarkCellColors(t *testing.T) {
	v, _ := newTestView(t, false)
	v.ShowGrid(board, 9)
	neutral := v.Cells()[0].Fill()

	v.MarkCell(0, round.MarkWrong)
	assert.Equal(t, round.MarkWrong, v.Cells()[0].Mark())
	assert.Equal(t, WrongColor, v.Cells()[0].Fill())
	assert.Equal(t, neutral, v.Cells()[1].Fill())

	v.MarkCell(1, round.MarkClicked)
	assert.Equal(t, ClickedColor, v.Cells()[1].Fill())

	v.MarkCell(0, round.MarkNeutral)
	assert.Equal(t, neutral, v.Cells()[0].Fill())

	// Off-board marks are ignored.
	v.MarkCell(42, round.MarkWrong)
}

func TestTargetTimerAndPauseLabels(t *testing.T) {
	v, rec := newTestView(t, false)
	v.ShowGrid(board, 9)

	v.ShowTarget(7)
	assert.Equal(t, "7", v.targetText.Text)
	v.ShowElapsed(12900 * time.Millisecond)
	assert.Equal(t, "Time: 12s", v.timerLabel.Text)

	v.ShowPaused(true)
	assert.Equal(t, "Resume", v.pauseButton.Text)
	assert.True(t, v.pausedBanner.Visible())
	v.ShowPaused(false)
	assert.Equal(t, "Pause", v.pauseButton.Text)

	test.Tap(v.pauseButton)
	assert.Equal(t, control.CmdTogglePause, rec.last(t).Type)
	test.Tap(v.resetButton)
	assert.Equal(t, control.CmdReset, rec.last(t).Type)
}

func TestCompletedThenClear(t *testing.T) {
	v, rec := newTestView(t, false)
	v.ShowGrid(board, 1)

	v.ShowCompleted(14 * time.Second)
	assert.True(t, v.celebration.Visible())
	assert.Equal(t, "You finished in 14 seconds!", v.completionLabel.Text)
	assert.True(t, v.pauseButton.Disabled())

	test.Tap(v.restartButton)
	assert.Equal(t, control.CmdRestart, rec.last(t).Type)

	v.Clear()
	assert.False(t, v.celebration.Visible())
	assert.True(t, v.dashboard.Visible())
	assert.False(t, v.game.Visible())
	assert.Empty(t, v.Cells())
	assert.Equal(t, "-", v.targetText.Text)
	assert.Equal(t, "Time: 0s", v.timerLabel.Text)
	assert.True(t, v.resetButton.Disabled())
}

func TestThemeToggle(t *testing.T) {
	v, rec := newTestView(t, false)
	assert.Equal(t, "Enable Dark Mode", v.themeButton.Text)

	test.Tap(v.themeButton)
	assert.Equal(t, control.CmdToggleTheme, rec.last(t).Type)

	app := test.NewTempApp(t)
	v.ApplyTheme(app, true)
	assert.Equal(t, "Disable Dark Mode", v.themeButton.Text)
	ct, ok := app.Settings().Theme().(*CustomTheme)
	require.True(t, ok)
	assert.True(t, ct.Dark())
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	cmd := control.CellTapped(0, s)
	require.NotZero(t, cmd.Number, "label %q", s)
	return cmd.Number
}
