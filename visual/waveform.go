package visual

import (
	"math"
	"sync"
	"time"
)

// Defaults for the visualizer configuration.
const (
	DefaultBins        = 100
	DefaultRingSize    = 4096
	DefaultIdleTimeout = 5 * time.Second
)

const (
	// Cutoff value at and above which the filter factor is 1.0.
	lowpassFullScaleHz = 20000

	// Decay factors. Idle decay applies to the whole buffer once the
	// idle timeout passes; fade decay applies per bin during
	// transition frames and settles faster.
	idleDecay = 0.9
	fadeDecay = 0.95

	// Bins below this snap to exactly zero so the display never
	// lingers at a near-zero value.
	snapFloor = 0.01

	syntheticScale   = 0.7
	reverbVisualGain = 0.3
)

// Config sizes the visualizer at construction time.
type Config struct {
	Bins        int
	RingSize    int
	SampleRate  int
	IdleTimeout time.Duration
}

// DefaultConfig returns the standard visualizer dimensions.
func DefaultConfig(sampleRate int) Config {
	return Config{
		Bins:        DefaultBins,
		RingSize:    DefaultRingSize,
		SampleRate:  sampleRate,
		IdleTimeout: DefaultIdleTimeout,
	}
}

// Snapshot is the per-tick view of engine activity and effect
// parameters the visualizer renders from.
type Snapshot struct {
	Active        bool
	VisualOnly    bool
	LastPlayed    time.Time
	Speed         float64
	Volume        float64
	LowpassHz     int
	ReverbEnabled bool
	ReverbDelay   time.Duration
}

// Visualizer produces the displayed waveform buffer: one value per
// visual column, each in [0, 1]. When the sample ring holds captured
// audio the display follows it; otherwise a deterministic synthetic
// wave keeps the UI responsive to every effect parameter.
type Visualizer struct {
	cfg   Config
	bins  []float64
	start time.Time
	now   func() time.Time

	mu    sync.Mutex
	ring  []float64
	pos   int
	count int
}

// New creates a visualizer with all bins at zero.
func New(cfg Config) *Visualizer {
	if cfg.Bins <= 0 {
		cfg.Bins = DefaultBins
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = DefaultRingSize
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	return &Visualizer{
		cfg:   cfg,
		bins:  make([]float64, cfg.Bins),
		start: time.Now(),
		now:   time.Now,
		ring:  make([]float64, cfg.RingSize),
	}
}

// PushSamples appends captured samples to the ring, evicting the
// oldest past capacity. Called from the speaker goroutine.
func (v *Visualizer) PushSamples(samples []float64) {
	v.mu.Lock()
	for _, s := range samples {
		v.ring[v.pos] = s
		v.pos = (v.pos + 1) % len(v.ring)
		if v.count < len(v.ring) {
			v.count++
		}
	}
	v.mu.Unlock()
}

// Bins returns a copy of the current waveform buffer.
func (v *Visualizer) Bins() []float64 {
	out := make([]float64, len(v.bins))
	copy(out, v.bins)
	return out
}

// Update recomputes the waveform buffer for one tick.
func (v *Visualizer) Update(snap Snapshot) {
	// Fully idle: decay toward silence and settle at exactly zero.
	if !snap.Active && (snap.LastPlayed.IsZero() || v.now().Sub(snap.LastPlayed) > v.cfg.IdleTimeout) {
		for i := range v.bins {
			v.bins[i] = decayed(v.bins[i], idleDecay)
		}
		return
	}

	samples := v.ringSnapshot()
	if len(samples) > 0 {
		v.updateFromSamples(snap, samples)
		return
	}
	v.simulate(snap)
}

// updateFromSamples maps the captured ring onto the bins, scaled by
// the current volume and a visual stand-in for the low-pass filter.
func (v *Visualizer) updateFromSamples(snap Snapshot, samples []float64) {
	factor := filterFactor(snap.LowpassHz)
	reverbOffset := int(snap.ReverbDelay.Seconds() * float64(v.cfg.SampleRate))

	for i := range v.bins {
		if !snap.Active {
			v.bins[i] = decayed(v.bins[i], fadeDecay)
			continue
		}

		idx := i * len(samples) / len(v.bins)
		if idx > len(samples)-1 {
			idx = len(samples) - 1
		}
		val := math.Abs(samples[idx]) * snap.Volume * factor
		if val > 1.0 {
			val = 1.0
		}

		if snap.ReverbEnabled {
			echoIdx := (idx + reverbOffset) % len(samples)
			val += math.Abs(samples[echoIdx]) * reverbVisualGain * snap.Volume
			if val > 1.0 {
				val = 1.0
			}
		}
		v.bins[i] = val
	}
}

// simulate synthesizes a waveform that visibly responds to every
// adjustable parameter, used whenever no real capture is available.
func (v *Visualizer) simulate(snap Snapshot) {
	t := v.now().Sub(v.start).Seconds()
	factor := filterFactor(snap.LowpassHz)

	for i := range v.bins {
		if !snap.Active && !snap.VisualOnly {
			v.bins[i] = decayed(v.bins[i], fadeDecay)
			continue
		}

		x := float64(i) / 10.0
		base := math.Sin(t*5*snap.Speed+x) * snap.Volume
		harmonic := math.Sin(t*10*snap.Speed+x) * reverbVisualGain * factor
		val := math.Abs(base+harmonic) * snap.Volume

		if snap.ReverbEnabled {
			val += math.Abs(math.Sin(t*5*snap.Speed+x-0.5) * reverbVisualGain * snap.Volume)
		}

		val *= syntheticScale
		if val > 1.0 {
			val = 1.0
		}
		v.bins[i] = val
	}
}

// ringSnapshot returns the captured samples in chronological order,
// or nil when nothing was ever captured.
func (v *Visualizer) ringSnapshot() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.count == 0 {
		return nil
	}
	out := make([]float64, v.count)
	start := (v.pos - v.count + len(v.ring)) % len(v.ring)
	for i := 0; i < v.count; i++ {
		out[i] = v.ring[(start+i)%len(v.ring)]
	}
	return out
}

func filterFactor(lowpassHz int) float64 {
	if lowpassHz >= lowpassFullScaleHz {
		return 1.0
	}
	return float64(lowpassHz) / lowpassFullScaleHz
}

func decayed(val, factor float64) float64 {
	val *= factor
	if val < snapFloor {
		return 0
	}
	return val
}
