package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Resampler quality used for both rate conversion and time scaling.
const resampleQuality = 4

// newGain applies a linear volume multiplier.
// math.Log2(0) is -Inf, so zero volume switches to silent instead.
func newGain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// newDelay shifts the stream start by prefixing silence.
func newDelay(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return beep.Seq(beep.Silence(rate.N(d)), s)
}

// lowPass attenuates content above the cutoff with a one-pole IIR per
// channel. Filter state carries across Stream calls.
type lowPass struct {
	s     beep.Streamer
	alpha float64
	left  float64
	right float64
}

// newLowPass creates a low-pass filter stage for the given cutoff.
func newLowPass(s beep.Streamer, cutoffHz int, rate beep.SampleRate) beep.Streamer {
	dt := 1.0 / float64(rate)
	rc := 1.0 / (2 * math.Pi * float64(cutoffHz))
	return &lowPass{s: s, alpha: dt / (rc + dt)}
}

func (l *lowPass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.s.Stream(samples)
	for i := 0; i < n; i++ {
		l.left += l.alpha * (samples[i][0] - l.left)
		l.right += l.alpha * (samples[i][1] - l.right)
		samples[i][0] = l.left
		samples[i][1] = l.right
	}
	return n, ok
}

func (l *lowPass) Err() error { return l.s.Err() }

// SampleSink receives the mono mix of frames passing through a tap.
// The waveform visualizer's ring buffer implements it.
type SampleSink interface {
	PushSamples([]float64)
}

// tap forwards its wrapped stream unchanged while copying a mono mix
// of every frame into a SampleSink. It sits last in the mix graph, so
// the capture reflects all applied effects.
type tap struct {
	s    beep.Streamer
	dst  SampleSink
	mono []float64
}

func newTap(s beep.Streamer, dst SampleSink) beep.Streamer {
	return &tap{s: s, dst: dst}
}

func (t *tap) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.s.Stream(samples)
	if n > 0 {
		if cap(t.mono) < n {
			t.mono = make([]float64, n)
		}
		buf := t.mono[:n]
		for i := 0; i < n; i++ {
			buf[i] = (samples[i][0] + samples[i][1]) / 2
		}
		t.dst.PushSamples(buf)
	}
	return n, ok
}

func (t *tap) Err() error { return t.s.Err() }
