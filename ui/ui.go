package ui

import (
	"image/color"
	"time"

	"StudyLight/control"
	"StudyLight/i18n"
	"StudyLight/stopwatch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is the surface the UI needs from the application.
type App interface {
	EnqueueCommand(cmd control.Command)
	HandleKeyRune(r rune)
	ShowAboutDialog()
}

// Snapshot carries everything the widget needs to render one frame. The
// command loop builds it; the widget never reads the session directly.
type Snapshot struct {
	TimeText   string
	StateLabel string
	Fill       color.NRGBA
}

// StopwatchWidget displays the session time over a state-colored backdrop.
// Primary tap toggles run/pause, secondary tap resets.
type StopwatchWidget struct {
	stateText  *canvas.Text
	timeText   *canvas.Text
	backdrop   *canvas.Rectangle
	borderRect *canvas.Rectangle
	tappable   *TappableContainer
}

// NewStopwatchWidget builds the stopwatch display.
func NewStopwatchWidget(a App) *StopwatchWidget {
	w := &StopwatchWidget{}

	w.stateText = canvas.NewText(i18n.T("Paused"), color.White)
	w.stateText.TextSize = stopwatch.FontSize

	w.timeText = canvas.NewText("00", color.White)
	w.timeText.TextStyle.Bold = true
	w.timeText.TextSize = stopwatch.FontSizeTime

	w.backdrop = canvas.NewRectangle(stopwatch.PausedColor)
	w.backdrop.CornerRadius = stopwatch.CornerRadius

	w.borderRect = canvas.NewRectangle(color.Transparent)
	w.borderRect.SetMinSize(fyne.NewSize(stopwatch.WidgetWidth, stopwatch.WidgetHeight))
	w.borderRect.CornerRadius = stopwatch.CornerRadius

	content := container.New(layout.NewVBoxLayout(),
		layout.NewSpacer(),
		container.New(layout.NewCenterLayout(), w.timeText),
		container.New(layout.NewCenterLayout(), w.stateText),
		layout.NewSpacer(),
	)

	w.tappable = NewTappableContainer(container.NewStack(w.backdrop, content, w.borderRect), nil, nil)

	w.tappable.OnTappedPrimary = func() {
		enqueueAndWait(a, control.CmdToggleRun)
	}
	w.tappable.OnTappedSecondary = func(e *fyne.PointEvent) {
		enqueueAndWait(a, control.CmdReset)
	}

	return w
}

// GetCanvasObject returns the widget's root canvas object.
func (w *StopwatchWidget) GetCanvasObject() fyne.CanvasObject {
	return w.tappable
}

// Apply renders a display snapshot. Safe to call from any goroutine.
func (w *StopwatchWidget) Apply(s Snapshot) {
	fyne.Do(func() {
		w.timeText.Text = s.TimeText
		w.stateText.Text = s.StateLabel
		w.backdrop.FillColor = s.Fill

		w.timeText.Refresh()
		w.stateText.Refresh()
		w.backdrop.Refresh()
	})
}

// enqueueAndWait posts a command and waits briefly for the command loop to
// confirm, so the next frame reflects the new state.
func enqueueAndWait(a App, t control.CommandType) {
	reply := make(chan error, 1)
	a.EnqueueCommand(control.Command{Type: t, Reply: reply})
	select {
	case <-reply:
	case <-time.After(200 * time.Millisecond):
	}
}

// BuildFooter builds the control row: break, reset, time adjustment and the
// about dialog trigger.
func BuildFooter(a App) fyne.CanvasObject {
	breakButton := widget.NewButton(i18n.T("Break"), func() {
		enqueueAndWait(a, control.CmdToggleBreak)
	})
	resetButton := widget.NewButton(i18n.T("Reset"), func() {
		enqueueAndWait(a, control.CmdReset)
	})
	rewindButton := widget.NewButton("-10s", func() {
		enqueueAndWait(a, control.CmdRewind)
	})
	forwardButton := widget.NewButton("+10s", func() {
		enqueueAndWait(a, control.CmdFastForward)
	})

	aboutIcon := widget.NewIcon(theme.QuestionIcon())
	helpButton := NewTappableContainer(aboutIcon, func() {
		a.ShowAboutDialog()
	}, nil)

	buttonsSpacer := canvas.NewRectangle(color.Transparent)
	buttonsSpacer.SetMinSize(fyne.NewSize(stopwatch.FooterSpacing, 0))

	controls := container.NewHBox(breakButton, buttonsSpacer, resetButton, rewindButton, forwardButton)
	centeredControls := container.NewHBox(layout.NewSpacer(), controls, layout.NewSpacer())

	leftContent := container.NewVBox(layout.NewSpacer(), helpButton)

	return container.New(
		layout.NewBorderLayout(nil, nil, leftContent, nil),
		leftContent,
		centeredControls,
	)
}

// CreateMainWindow builds the fixed-size main window around the stopwatch
// widget and returns both.
func CreateMainWindow(a App, fyneApp fyne.App) (fyne.Window, *StopwatchWidget) {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "StudyLight"
	}
	w := fyneApp.NewWindow(title)

	sw := NewStopwatchWidget(a)
	footer := BuildFooter(a)

	w.Canvas().SetOnTypedRune(a.HandleKeyRune)

	bottomSpacer := canvas.NewRectangle(color.Transparent)
	bottomSpacer.SetMinSize(fyne.NewSize(0, stopwatch.GapButton))

	contentVBox := container.NewVBox(
		sw.GetCanvasObject(),
		bottomSpacer,
		footer,
	)

	w.SetContent(contentVBox)
	w.Resize(fyne.NewSize(stopwatch.WidgetWidth, 220))
	w.SetFixedSize(true)
	return w, sw
}

// TappableContainer wraps a canvas object with primary/secondary tap
// callbacks.
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

// WithAlpha returns c with the given alpha channel.
func WithAlpha(c color.Color, alpha uint8) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
