package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wavedeck/wavedeck/audio"
	"github.com/wavedeck/wavedeck/browser"
	"github.com/wavedeck/wavedeck/input"
	"github.com/wavedeck/wavedeck/render"
	"github.com/wavedeck/wavedeck/visual"
)

// tickInterval drives the poll/update/draw cycle at roughly 60 Hz.
const tickInterval = 16 * time.Millisecond

// App is the explicit application context: every component hangs off
// it and is independently constructible without the others.
type App struct {
	screen  tcell.Screen
	cfg     *audio.Config
	params  *audio.EffectParams
	engine  *audio.Engine
	vis     *visual.Visualizer
	browser *browser.Browser
	keys    *input.Machine

	// source is the last confirmed browser selection; empty falls
	// back to the configured default.
	source string
	quit   bool
}

// New wires the components into an application.
func New(screen tcell.Screen, cfg *audio.Config, engine *audio.Engine, vis *visual.Visualizer, br *browser.Browser) *App {
	return &App{
		screen:  screen,
		cfg:     cfg,
		params:  engine.Params(),
		engine:  engine,
		vis:     vis,
		browser: br,
		keys:    input.NewMachine(),
	}
}

// Run executes the event/tick loop until quit.
func (a *App) Run() error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	a.draw()
	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleEvent(ev)
		case <-ticker.C:
			a.Tick()
			a.draw()
		}
	}
	return nil
}

// Tick advances engine and visualizer state by one frame.
// Loop reconciliation runs before cleanup inside Engine.Tick.
func (a *App) Tick() {
	a.engine.Tick()
	a.vis.Update(a.snapshot())
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.Apply(a.keys.Process(ev))
	}
}

// Apply dispatches one decoded intent to the owning component.
func (a *App) Apply(intent input.Intent) {
	switch intent {
	case input.IntentPlay:
		a.engine.Play(a.currentSource(), false)
	case input.IntentPlayLoop:
		a.engine.Play(a.currentSource(), true)
	case input.IntentSpeedUp:
		a.params.Adjust(audio.ParamSpeed, true)
	case input.IntentSpeedDown:
		a.params.Adjust(audio.ParamSpeed, false)
	case input.IntentVolumeUp:
		a.params.Adjust(audio.ParamVolume, true)
	case input.IntentVolumeDown:
		a.params.Adjust(audio.ParamVolume, false)
	case input.IntentFilterUp:
		a.params.Adjust(audio.ParamLowpass, true)
	case input.IntentFilterDown:
		a.params.Adjust(audio.ParamLowpass, false)
	case input.IntentToggleReverb:
		a.params.ToggleReverb()
	case input.IntentSelectNext:
		a.browser.Next()
	case input.IntentSelectPrev:
		a.browser.Prev()
	case input.IntentSelectConfirm:
		a.confirmSelection()
	case input.IntentDirParent:
		a.browser.Parent()
	case input.IntentQuit:
		a.quit = true
	}
}

// Quitting reports whether the loop is about to exit.
func (a *App) Quitting() bool {
	return a.quit
}

// confirmSelection descends into a directory or plays a file and
// returns to normal mode.
func (a *App) confirmSelection() {
	sel := a.browser.Selected()
	if sel == nil {
		return
	}
	if sel.IsDir {
		a.browser.Enter()
		return
	}
	a.source = sel.Path
	a.engine.Play(a.source, false)
	a.keys.SetMode(input.ModeNormal)
}

func (a *App) currentSource() string {
	if a.source != "" {
		return a.source
	}
	return a.cfg.Source
}

func (a *App) snapshot() visual.Snapshot {
	total, _ := a.engine.SessionCounts()
	return visual.Snapshot{
		Active:        total > 0,
		VisualOnly:    a.engine.VisualOnly(),
		LastPlayed:    a.engine.LastPlayed(),
		Speed:         a.params.Speed,
		Volume:        a.params.Volume,
		LowpassHz:     a.params.LowpassHz,
		ReverbEnabled: a.params.ReverbEnabled,
		ReverbDelay:   a.params.ReverbDelay,
	}
}

func (a *App) draw() {
	render.Draw(a.screen, a.view())
	a.screen.Show()
}

func (a *App) view() render.View {
	total, loops := a.engine.SessionCounts()
	v := render.View{
		Playing:    a.engine.IsPlaying(),
		VisualOnly: a.engine.VisualOnly(),
		Mode:       a.keys.Mode().String(),
		Speed:      a.params.Speed,
		Volume:     a.params.Volume,
		LowpassHz:  a.params.LowpassHz,
		LowpassOff: !a.params.LowpassActive(),
		Reverb:     a.params.ReverbEnabled,
		Sessions:   total,
		Loops:      loops,
		Messages:   a.engine.Messages(),
		Bins:       a.vis.Bins(),
	}
	if a.keys.Mode() == input.ModeBrowser {
		entries := a.browser.Entries()
		bv := &render.BrowserView{
			Dir:      a.browser.Dir(),
			Names:    make([]string, len(entries)),
			Dirs:     make([]bool, len(entries)),
			Selected: a.browser.SelectedIndex(),
		}
		for i, e := range entries {
			bv.Names[i] = e.Name
			bv.Dirs[i] = e.IsDir
		}
		v.Browser = bv
	}
	return v
}
