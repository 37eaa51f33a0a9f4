// Package main contains the application wiring and the AppManager which
// coordinates the session, audio and the UI.
//
// Maintenance notes:
//   - Concurrency model: a single command-loop goroutine (`commandLoop`)
//     serializes every session mutation. The 100ms ticker does not touch the
//     session either; it enqueues CmdTick like any other command. This keeps
//     the stopwatch.Session free of locks, so never call its methods from
//     anywhere but the command loop.
//   - `cmdCh` is a buffered channel used to enqueue commands from the UI.
//     Sends time out after a short interval and drop instead of blocking the
//     UI thread.
//   - Side effects (sound playback, break record writes) are fire-and-forget
//     so they never stall the tick cadence.
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"StudyLight/control"
	"StudyLight/eventlog"
	"StudyLight/i18n"
	"StudyLight/storage"
	"StudyLight/stopwatch"
	"StudyLight/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
)

// Alert sounds. Missing files disable the sound, never the app.
const (
	soundInvalid    = "alert_invalid.ogg"
	soundBreakStart = "break_start.ogg"
	soundBreakEnd   = "break_end.ogg"
)

const aboutText = `StudyLight tracks your study time and earns you breaks.

Tap the timer to start or pause. After five minutes of study you can take a
break; its length grows with the time you put in. The widget color follows
the session state.`

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	session    *stopwatch.Session
	settings   storage.Settings
	widget     *ui.StopwatchWidget
	breakLog   *eventlog.BreakLog

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc
	cmdDone   chan struct{}

	audioBuffers map[string]*beep.Buffer
	speakerLock  sync.Mutex
	content      embed.FS // Embedded file system for assets
}

// NewAppManager creates a new application manager.
func NewAppManager(content embed.FS, settings storage.Settings, breakLog *eventlog.BreakLog) *AppManager {
	a := &AppManager{
		session:      stopwatch.NewSession(stopwatch.SystemClock, settings.Policy),
		settings:     settings,
		breakLog:     breakLog,
		audioBuffers: make(map[string]*beep.Buffer),
		content:      content,
	}
	a.loadAudioFiles()

	a.cmdCh = make(chan control.Command, 256)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	a.cmdDone = make(chan struct{})
	go a.commandLoop()

	return a
}

// SetWidget attaches the stopwatch widget once the window is built.
func (a *AppManager) SetWidget(w *ui.StopwatchWidget) {
	a.widget = w
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	// Try to enqueue the command but avoid blocking UI indefinitely. If the
	// channel stays full for the configured short timeout, drop and log.
	select {
	case a.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping command")
	}
}

func (a *AppManager) commandLoop() {
	defer close(a.cmdDone)
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			err := a.handleCommand(cmd)
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}

// handleCommand applies one command to the session and interprets the
// result: invalid operations alert, break starts are recorded, expiry
// notifies once. Every command ends with a display refresh.
func (a *AppManager) handleCommand(cmd control.Command) error {
	var err error
	switch cmd.Type {
	case control.CmdToggleRun:
		err = a.session.ToggleRun()
	case control.CmdToggleBreak:
		var breakLen time.Duration
		breakLen, err = a.session.ToggleBreak()
		if err == nil && breakLen > 0 {
			a.onBreakStart(breakLen)
		}
	case control.CmdFastForward:
		err = a.session.FastForward(a.settings.AdjustStep)
	case control.CmdRewind:
		err = a.session.Rewind(a.settings.AdjustStep)
	case control.CmdReset:
		a.session.Reset()
	case control.CmdTick:
		// handled below; every command path ticks once for the display
	}

	if err != nil {
		a.reportError(err)
	}

	res, tickErr := a.session.Tick()
	if tickErr != nil {
		a.reportError(tickErr)
		return tickErr
	}
	if res.BreakExpired {
		a.onBreakComplete()
	}
	a.refreshDisplay(res)
	return err
}

// reportError is the notification boundary for session errors. Invalid
// operations alert and leave state untouched; an unknown state is an
// internal consistency failure and is reported loudly, but neither crashes
// the loop.
func (a *AppManager) reportError(err error) {
	switch {
	case errors.Is(err, stopwatch.ErrUnknownState):
		log.Printf("INTERNAL: session invariant violated: %v", err)
		a.PlaySound(soundInvalid)
	case errors.Is(err, stopwatch.ErrInvalidOperation):
		log.Printf("rejected: %v", err)
		a.PlaySound(soundInvalid)
	default:
		log.Printf("session: %v", err)
	}
}

func (a *AppManager) onBreakStart(breakLen time.Duration) {
	a.PlaySound(soundBreakStart)
	log.Printf("break started: %s", breakLen)

	at := time.Now()
	go func() {
		if err := a.breakLog.Record(at, breakLen); err != nil {
			log.Printf("break log: %v", err)
		}
	}()
}

func (a *AppManager) onBreakComplete() {
	a.PlaySound(soundBreakEnd)
	log.Printf("break complete")
}

func (a *AppManager) refreshDisplay(res stopwatch.TickResult) {
	if a.widget == nil {
		return
	}

	alpha := uint8(a.settings.IdleOpacity * 255)
	if res.State == stopwatch.StateRunning || res.State == stopwatch.StateBreaking {
		alpha = uint8(a.settings.ActiveOpacity * 255)
	}

	a.widget.Apply(ui.Snapshot{
		TimeText:   stopwatch.FormatMinutes(res.Display),
		StateLabel: i18n.T(stateLabel(res.State)),
		Fill:       ui.WithAlpha(stopwatch.StateColor(res.State), alpha),
	})
}

func stateLabel(s stopwatch.State) string {
	switch s {
	case stopwatch.StateRunning:
		return "Studying"
	case stopwatch.StateBreaking:
		return "On break"
	case stopwatch.StateStopped:
		return "Done"
	}
	return "Paused"
}

func (a *AppManager) loadAudioFiles() {
	if err := speaker.Init(44100, 44100/10); err != nil {
		log.Printf("Audio disabled: Failed to initialize speaker: %v\n", err)
	}

	for _, filename := range []string{soundInvalid, soundBreakStart, soundBreakEnd} {
		if _, ok := a.audioBuffers[filename]; ok {
			continue
		}

		filepath := fmt.Sprintf("assets/%s", filename)
		data, err := a.content.Open(filepath)
		if err != nil {
			log.Printf("Failed to open audio %s: %v", filepath, err)
			continue
		}

		streamer, format, err := vorbis.Decode(data)
		if err != nil {
			log.Printf("Failed to decode audio %s: %v", filepath, err)
			data.Close()
			continue
		}

		buffer := beep.NewBuffer(format)
		buffer.Append(streamer)
		a.audioBuffers[filename] = buffer

		streamer.Close()
		data.Close()
	}
}

// PlaySound plays a sound file.
func (a *AppManager) PlaySound(filename string) {
	b, ok := a.audioBuffers[filename]
	if !ok {
		return
	}

	a.speakerLock.Lock()
	defer a.speakerLock.Unlock()

	speaker.Play(b.Streamer(0, b.Len()))
}

// tick drives the periodic display refresh and break-expiry detection.
func (a *AppManager) tick(ctx context.Context) {
	ticker := time.NewTicker(a.settings.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.EnqueueCommand(control.Command{Type: control.CmdTick})
		}
	}
}

// HandleKeyRune handles key presses for the application.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case ' ':
		a.EnqueueCommand(control.Command{Type: control.CmdToggleRun})
	case 'b', 'B':
		a.EnqueueCommand(control.Command{Type: control.CmdToggleBreak})
	case 'f', 'F':
		a.EnqueueCommand(control.Command{Type: control.CmdFastForward})
	case 'w', 'W':
		a.EnqueueCommand(control.Command{Type: control.CmdRewind})
	case 'r', 'R':
		a.EnqueueCommand(control.Command{Type: control.CmdReset})
	}
}

// ShowAboutDialog shows the about dialog.
func (a *AppManager) ShowAboutDialog() {
	text := widget.NewLabel(aboutText)
	text.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(text)
	scrollableContent.SetMinSize(fyne.NewSize(360, 220))

	dialog.ShowCustom(i18n.T("About StudyLight"), i18n.T("Close"), scrollableContent, a.mainWindow)
}

// Shutdown stops the command loop and reports the final study time. It
// waits for the loop to exit so the session is no longer being mutated
// when the final snapshot is taken.
func (a *AppManager) Shutdown() {
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
	<-a.cmdDone
	snap := a.session.Snapshot()
	log.Printf("session finished: total study time %s", snap.RunningTime)
}
