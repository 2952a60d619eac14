package audio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"
)

// Engine owns the set of in-flight playback sessions. Per play request
// it builds a mix graph from the current effect parameters and queues
// it on a fresh sink; per tick it refills drained looping sinks and
// evicts drained non-looping sessions. All of it runs on the
// application's tick loop, nothing here blocks.
type Engine struct {
	cfg     *Config
	params  *EffectParams
	sinks   SinkFactory
	decoder Decoder
	capture SampleSink
	rate    beep.SampleRate

	sessions   []*Session
	lastPlayed time.Time
	visualOnly bool
	messages   []string

	now func() time.Time
}

// NewEngine creates a playback engine. A nil sink factory puts the
// engine in visual-only mode: play calls become timestamp updates so
// the visualizer still sees activity without a device.
func NewEngine(cfg *Config, params *EffectParams, sinks SinkFactory) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if params == nil {
		params = NewEffectParams(cfg.ReverbDelay)
	}
	return &Engine{
		cfg:        cfg,
		params:     params,
		sinks:      sinks,
		decoder:    fileDecoder{},
		rate:       beep.SampleRate(cfg.SampleRate),
		visualOnly: sinks == nil,
		now:        time.Now,
	}
}

// SetCapture routes the mono mix of every subsequently built graph
// into dst, typically the visualizer's sample ring.
func (e *Engine) SetCapture(dst SampleSink) {
	e.capture = dst
}

// Params returns the parameter set graphs are built from.
func (e *Engine) Params() *EffectParams {
	return e.params
}

// Play opens and decodes source, applies the current effect parameters
// and queues the result on a new sink. Failures are recoverable: they
// become diagnostic messages and the engine stays usable, so the
// returned error is always nil for per-source problems.
func (e *Engine) Play(source string, looping bool) error {
	if e.visualOnly {
		e.lastPlayed = e.now()
		return nil
	}

	sink, err := e.sinks.NewSink()
	if err != nil {
		e.addMessage(fmt.Sprintf("No output sink available: %v", err))
		return nil
	}

	stream, err := e.buildStream(source)
	if err != nil {
		sink.Close()
		e.addMessage(describeFailure(source, err))
		return nil
	}

	sink.Append(stream)
	sess := newSession(source, looping, sink)
	e.sessions = append(e.sessions, sess)
	e.lastPlayed = e.now()
	slog.Debug("session started", "id", sess.ID, "source", source, "looping", looping)
	return nil
}

// Tick runs one reconciliation cycle. Loop refill runs before cleanup
// so a looping sink that just drained is never seen empty by the
// eviction check.
func (e *Engine) Tick() {
	e.ReconcileLoops()
	e.CleanupFinished()
}

// ReconcileLoops refills every looping session whose sink has drained
// by rebuilding the mix graph against the session's own source. This
// is restart-on-empty, not a sample-accurate loop: a gap of one
// decode+mix cycle per boundary is accepted behavior.
func (e *Engine) ReconcileLoops() {
	if e.visualOnly {
		return
	}
	for _, sess := range e.sessions {
		if !sess.Looping || !sess.sink.Empty() {
			continue
		}
		stream, err := e.buildStream(sess.Source)
		if err != nil {
			// Session stays alive; the next tick retries.
			e.addMessage(describeFailure(sess.Source, err))
			continue
		}
		sess.sink.Append(stream)
		slog.Debug("loop restarted", "id", sess.ID, "source", sess.Source)
	}
}

// CleanupFinished evicts every non-looping session whose sink has
// drained. Looping sessions are never removed here.
func (e *Engine) CleanupFinished() {
	kept := e.sessions[:0]
	for _, sess := range e.sessions {
		if sess.Looping || !sess.sink.Empty() {
			kept = append(kept, sess)
			continue
		}
		sess.sink.Close()
		slog.Debug("session finished", "id", sess.ID, "source", sess.Source)
	}
	for i := len(kept); i < len(e.sessions); i++ {
		e.sessions[i] = nil
	}
	e.sessions = kept
}

// IsPlaying reports activity. Visual-only mode counts as perpetually
// active so the status display and visualizer keep moving.
func (e *Engine) IsPlaying() bool {
	return e.visualOnly || len(e.sessions) > 0
}

// VisualOnly reports whether the engine runs without a device.
func (e *Engine) VisualOnly() bool {
	return e.visualOnly
}

// LastPlayed returns the time of the most recent play or loop start.
// The zero time means nothing was ever played.
func (e *Engine) LastPlayed() time.Time {
	return e.lastPlayed
}

// SessionCounts returns total and looping active session counts.
func (e *Engine) SessionCounts() (total, looping int) {
	for _, sess := range e.sessions {
		if sess.Looping {
			looping++
		}
	}
	return len(e.sessions), looping
}

// Messages returns the bounded diagnostic log, oldest first.
func (e *Engine) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

// AddMessage appends a diagnostic visible in the UI message log.
func (e *Engine) AddMessage(msg string) {
	e.addMessage(msg)
}

func (e *Engine) addMessage(msg string) {
	e.messages = append(e.messages, msg)
	if n := len(e.messages) - e.cfg.MaxMessages; n > 0 {
		e.messages = append(e.messages[:0], e.messages[n:]...)
	}
	slog.Warn("diagnostic", "msg", msg)
}

func (e *Engine) buildStream(source string) (beep.Streamer, error) {
	stream, err := buildGraph(e.decoder, source, e.params, e.rate, e.cfg.ReverbGain)
	if err != nil {
		return nil, err
	}
	if e.capture != nil {
		stream = newTap(stream, e.capture)
	}
	return stream, nil
}

func describeFailure(source string, err error) string {
	switch {
	case errors.Is(err, ErrOpen):
		return fmt.Sprintf("Error opening file: make sure %s exists", source)
	case errors.Is(err, ErrDecode):
		return "Error decoding audio file"
	default:
		return fmt.Sprintf("Playback error: %v", err)
	}
}
