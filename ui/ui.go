package ui

import (
	"image/color"
	"strconv"
	"time"

	"SchulteTable/control"
	"SchulteTable/grid"
	"SchulteTable/i18n"
	"SchulteTable/round"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is what the view needs from the application.
type App interface {
	EnqueueCommand(cmd control.Command)
	HandleKeyRune(r rune)
}

// Cell is one clickable number on the board.
type Cell struct {
	index int
	mark  round.Mark

	rect *canvas.Rectangle
	text *canvas.Text
	tap  *TappableContainer
}

func newCell(a App, index, number int, label bool) *Cell {
	c := &Cell{index: index}

	c.rect = canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	c.rect.CornerRadius = CornerRadius
	c.rect.SetMinSize(fyne.NewSize(CellSize, CellSize))

	c.text = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	c.text.TextSize = FontSizeCell
	c.text.TextStyle.Bold = true
	c.text.Alignment = fyne.TextAlignCenter
	if label {
		c.text.Text = strconv.Itoa(number)
	}

	c.tap = NewTappableContainer(container.NewStack(c.rect, container.NewCenter(c.text)), func() {
		// The label is what the player saw; the controller checks it
		// against the board so a stale cell cannot desync the round.
		a.EnqueueCommand(control.CellTapped(c.index, c.text.Text))
	}, nil)
	return c
}

// Label returns the text shown on the cell.
func (c *Cell) Label() string {
	return c.text.Text
}

// Mark returns the cell's transient state.
func (c *Cell) Mark() round.Mark {
	return c.mark
}

// Fill returns the cell's current background.
func (c *Cell) Fill() color.Color {
	return c.rect.FillColor
}

func (c *Cell) setMark(m round.Mark) {
	c.mark = m
	c.recolor()
}

func (c *Cell) recolor() {
	switch c.mark {
	case round.MarkClicked:
		c.rect.FillColor = ClickedColor
	case round.MarkWrong:
		c.rect.FillColor = WrongColor
	default:
		c.rect.FillColor = theme.Color(theme.ColorNameButton)
	}
	c.text.Color = theme.Color(theme.ColorNameForeground)
	c.rect.Refresh()
	c.text.Refresh()
}

// View renders the round and turns taps and buttons into commands. It
// implements round.Renderer; every method hops onto the Fyne thread.
type View struct {
	a          App
	hideSolved bool

	dashboard *fyne.Container
	game      *fyne.Container
	board     *fyne.Container
	cells     []*Cell

	targetText   *canvas.Text
	timerLabel   *widget.Label
	pausedBanner *widget.Label
	pauseButton  *widget.Button
	resetButton  *widget.Button
	themeButton  *widget.Button
	startSmall   *widget.Button
	startLarge   *widget.Button

	celebration     *fyne.Container
	completionLabel *widget.Label
	restartButton   *widget.Button

	content fyne.CanvasObject
}

// NewView builds the whole window content in its idle state.
func NewView(a App, hideSolved, dark bool) *View {
	v := &View{a: a, hideSolved: hideSolved}

	v.startSmall = widget.NewButton(i18n.T(i18n.StartSmall), func() {
		a.EnqueueCommand(control.Start(grid.Small))
	})
	v.startLarge = widget.NewButton(i18n.T(i18n.StartLarge), func() {
		a.EnqueueCommand(control.Start(grid.Large))
	})
	v.startSmall.Importance = widget.HighImportance
	v.startLarge.Importance = widget.HighImportance
	title := widget.NewLabelWithStyle(i18n.T(i18n.Title), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.dashboard = container.NewCenter(container.NewVBox(title, v.startSmall, v.startLarge))

	v.targetText = canvas.NewText("-", theme.Color(theme.ColorNamePrimary))
	v.targetText.TextSize = FontSizeFind
	v.targetText.TextStyle.Bold = true
	v.timerLabel = widget.NewLabel(i18n.Tf(i18n.Time, map[string]any{"Seconds": 0}))
	v.pausedBanner = widget.NewLabelWithStyle(i18n.T(i18n.PausedBanner), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.pausedBanner.Hide()

	v.pauseButton = widget.NewButton(i18n.T(i18n.Pause), func() {
		a.EnqueueCommand(control.Command{Type: control.CmdTogglePause})
	})
	v.resetButton = widget.NewButton(i18n.T(i18n.Reset), func() {
		a.EnqueueCommand(control.Command{Type: control.CmdReset})
	})
	v.pauseButton.Disable()
	v.resetButton.Disable()

	header := container.NewHBox(
		widget.NewLabel(i18n.T(i18n.Find)),
		v.targetText,
		layout.NewSpacer(),
		v.timerLabel,
	)
	v.board = container.NewCenter()
	controls := container.NewHBox(layout.NewSpacer(), v.pauseButton, v.resetButton, layout.NewSpacer())
	v.game = container.NewBorder(header, container.NewVBox(v.pausedBanner, controls), nil, nil, v.board)
	v.game.Hide()

	v.themeButton = widget.NewButton(themeLabel(dark), func() {
		a.EnqueueCommand(control.Command{Type: control.CmdToggleTheme})
	})
	top := container.NewHBox(layout.NewSpacer(), v.themeButton)

	v.completionLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	v.restartButton = widget.NewButton(i18n.T(i18n.PlayAgain), func() {
		a.EnqueueCommand(control.Command{Type: control.CmdRestart})
	})
	v.restartButton.Importance = widget.HighImportance
	congrats := widget.NewLabelWithStyle(i18n.T(i18n.Congrats), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.celebration = container.NewStack(
		canvas.NewRectangle(OverlayColor),
		container.NewCenter(container.NewVBox(congrats, v.completionLabel, v.restartButton)),
	)
	v.celebration.Hide()

	body := container.NewBorder(top, nil, nil, nil, container.NewStack(v.dashboard, v.game))
	v.content = container.NewStack(body, v.celebration)
	return v
}

// Content returns the root canvas object.
func (v *View) Content() fyne.CanvasObject {
	return v.content
}

// Cells returns the cells on the board, in board order.
func (v *View) Cells() []*Cell {
	return v.cells
}

func (v *View) ShowGrid(g grid.Grid, target int) {
	fyne.Do(func() {
		v.cells = make([]*Cell, len(g.Numbers))
		objs := make([]fyne.CanvasObject, len(g.Numbers))
		for i, n := range g.Numbers {
			// Solved numbers stay on the board as traps; optionally unlabeled.
			label := !v.hideSolved || n <= target
			v.cells[i] = newCell(v.a, i, n, label)
			objs[i] = v.cells[i].tap
		}
		v.board.Objects = []fyne.CanvasObject{container.NewGridWithColumns(int(g.Size), objs...)}
		v.board.Refresh()

		v.dashboard.Hide()
		v.game.Show()
		v.pauseButton.Enable()
		v.resetButton.Enable()
	})
}

func (v *View) ShowTarget(target int) {
	fyne.Do(func() {
		if target <= 0 {
			v.targetText.Text = "-"
		} else {
			v.targetText.Text = strconv.Itoa(target)
		}
		v.targetText.Refresh()
	})
}

func (v *View) ShowElapsed(d time.Duration) {
	fyne.Do(func() {
		v.timerLabel.SetText(i18n.Tf(i18n.Time, map[string]any{"Seconds": round.Seconds(d)}))
	})
}

func (v *View) MarkCell(index int, m round.Mark) {
	fyne.Do(func() {
		if index < 0 || index >= len(v.cells) {
			return
		}
		v.cells[index].setMark(m)
	})
}

func (v *View) ShowPaused(paused bool) {
	fyne.Do(func() {
		if paused {
			v.pauseButton.SetText(i18n.T(i18n.Resume))
			v.pausedBanner.Show()
		} else {
			v.pauseButton.SetText(i18n.T(i18n.Pause))
			v.pausedBanner.Hide()
		}
	})
}

func (v *View) ShowCompleted(elapsed time.Duration) {
	fyne.Do(func() {
		v.completionLabel.SetText(i18n.Plural(i18n.FinishedIn, round.Seconds(elapsed)))
		v.pauseButton.Disable()
		v.celebration.Show()
	})
}

func (v *View) Clear() {
	fyne.Do(func() {
		v.cells = nil
		v.board.Objects = nil
		v.board.Refresh()

		v.targetText.Text = "-"
		v.targetText.Refresh()
		v.timerLabel.SetText(i18n.Tf(i18n.Time, map[string]any{"Seconds": 0}))
		v.pauseButton.SetText(i18n.T(i18n.Pause))
		v.pauseButton.Disable()
		v.resetButton.Disable()
		v.pausedBanner.Hide()

		v.celebration.Hide()
		v.game.Hide()
		v.dashboard.Show()
	})
}

// ApplyTheme switches the light/dark variant and relabels the toggle.
func (v *View) ApplyTheme(app fyne.App, dark bool) {
	fyne.Do(func() {
		app.Settings().SetTheme(NewCustomTheme(dark))
		v.themeButton.SetText(themeLabel(dark))
		v.targetText.Color = theme.Color(theme.ColorNamePrimary)
		v.targetText.Refresh()
		for _, c := range v.cells {
			c.recolor()
		}
	})
}

func themeLabel(dark bool) string {
	if dark {
		return i18n.T(i18n.DisableDark)
	}
	return i18n.T(i18n.EnableDark)
}

// CreateMainWindow builds the window around the view.
func CreateMainWindow(a App, fyneApp fyne.App, v *View) fyne.Window {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = i18n.T(i18n.Title)
	}
	w := fyneApp.NewWindow(title)
	w.Canvas().SetOnTypedRune(a.HandleKeyRune)
	w.SetContent(v.Content())
	w.Resize(fyne.NewSize(6*(CellSize+CellGap)+40, 6*(CellSize+CellGap)+160))
	return w
}

type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.Content)
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}
