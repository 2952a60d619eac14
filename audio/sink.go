package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// Sink is an output queue for mixed streams. Append is asynchronous:
// it returns immediately and consumption happens on the speaker's
// timeline. Empty reports whether the queue has pending audio, which
// is the only completion signal the engine gets; loop reconciliation
// polls it every tick.
type Sink interface {
	Append(beep.Streamer)
	Empty() bool
	Close()
}

// SinkFactory creates sinks on the active output device.
type SinkFactory interface {
	NewSink() (Sink, error)
}

// Device owns the speaker and the master mixer every sink feeds into.
type Device struct {
	mixer *beep.Mixer
	rate  beep.SampleRate
}

// OpenDevice initializes the speaker and starts the master mixer.
// ErrNoDevice is returned when no output device can be opened; the
// caller then constructs the engine without a sink factory and it
// degrades to visual-only mode.
func OpenDevice(rate beep.SampleRate, buffer time.Duration) (*Device, error) {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, errors.Wrapf(ErrNoDevice, "%v", err)
	}
	d := &Device{mixer: &beep.Mixer{}, rate: rate}
	speaker.Play(d.mixer)
	return d, nil
}

// SampleRate returns the device output rate.
func (d *Device) SampleRate() beep.SampleRate { return d.rate }

// NewSink attaches a fresh queue to the master mixer.
func (d *Device) NewSink() (Sink, error) {
	q := &queue{}
	speaker.Lock()
	d.mixer.Add(q)
	speaker.Unlock()
	return q, nil
}

// queue plays its pending streamers in order. While empty it outputs
// silence and stays attached to the mixer; after Close it detaches on
// the next pull. Stream runs under the speaker lock, so all external
// access locks the speaker.
type queue struct {
	streamers []beep.Streamer
	closed    bool
}

func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	if q.closed {
		return 0, false
	}
	filled := 0
	for filled < len(samples) {
		if len(q.streamers) == 0 {
			for i := filled; i < len(samples); i++ {
				samples[i] = [2]float64{}
			}
			break
		}
		sn, sok := q.streamers[0].Stream(samples[filled:])
		if !sok {
			q.streamers = q.streamers[1:]
		}
		filled += sn
	}
	return len(samples), true
}

func (q *queue) Err() error { return nil }

func (q *queue) Append(s beep.Streamer) {
	speaker.Lock()
	q.streamers = append(q.streamers, s)
	speaker.Unlock()
}

func (q *queue) Empty() bool {
	speaker.Lock()
	empty := len(q.streamers) == 0
	speaker.Unlock()
	return empty
}

func (q *queue) Close() {
	speaker.Lock()
	q.closed = true
	q.streamers = nil
	speaker.Unlock()
}
