package visual

import (
	"math"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{Bins: 20, RingSize: 256, SampleRate: 44100, IdleTimeout: 5 * time.Second}
}

func activeSnapshot() Snapshot {
	return Snapshot{
		Active:      true,
		LastPlayed:  time.Now(),
		Speed:       1.0,
		Volume:      1.0,
		LowpassHz:   20000,
		ReverbDelay: 60 * time.Millisecond,
	}
}

func binsInRange(t *testing.T, v *Visualizer) {
	t.Helper()
	for i, b := range v.Bins() {
		if b < 0 || b > 1 {
			t.Fatalf("Bin %d out of [0,1]: %f", i, b)
		}
	}
}

// TestIdleDecayConvergesToZero verifies every bin settles at exactly
// zero within a bounded number of ticks once the idle timeout passed
func TestIdleDecayConvergesToZero(t *testing.T) {
	v := New(testConfig())
	for i := range v.bins {
		v.bins[i] = 1.0
	}

	idle := Snapshot{Active: false, LastPlayed: time.Now().Add(-10 * time.Second)}
	for tick := 0; tick < 60; tick++ {
		v.Update(idle)
		binsInRange(t, v)
	}
	for i, b := range v.Bins() {
		if b != 0 {
			t.Errorf("Bin %d did not settle to exactly 0: %f", i, b)
		}
	}
}

// TestIdleDecayNeverPlayed verifies the zero time counts as idle
func TestIdleDecayNeverPlayed(t *testing.T) {
	v := New(testConfig())
	v.bins[0] = 0.5

	v.Update(Snapshot{Active: false})
	if v.bins[0] >= 0.5 {
		t.Errorf("Expected decay with zero lastPlayed, got %f", v.bins[0])
	}
}

// TestSyntheticActiveProducesMotion verifies the fallback wave is
// nonzero and in range while active with no captured samples
func TestSyntheticActiveProducesMotion(t *testing.T) {
	v := New(testConfig())
	v.now = func() time.Time { return v.start.Add(1234 * time.Millisecond) }

	v.Update(activeSnapshot())
	binsInRange(t, v)

	var sum float64
	for _, b := range v.Bins() {
		sum += b
	}
	if sum == 0 {
		t.Error("Expected synthetic waveform to produce nonzero bins")
	}
}

// TestSyntheticZeroVolumeIsFlat verifies volume scales the synthetic
// wave all the way to silence
func TestSyntheticZeroVolumeIsFlat(t *testing.T) {
	v := New(testConfig())
	v.now = func() time.Time { return v.start.Add(700 * time.Millisecond) }

	snap := activeSnapshot()
	snap.Volume = 0
	v.Update(snap)
	for i, b := range v.Bins() {
		if b != 0 {
			t.Errorf("Bin %d: expected silence at zero volume, got %f", i, b)
		}
	}
}

// TestSyntheticRespondsToParameters verifies speed, filter and reverb
// each change the synthetic output
func TestSyntheticRespondsToParameters(t *testing.T) {
	render := func(mutate func(*Snapshot)) []float64 {
		v := New(testConfig())
		v.now = func() time.Time { return v.start.Add(900 * time.Millisecond) }
		snap := activeSnapshot()
		mutate(&snap)
		v.Update(snap)
		return v.Bins()
	}

	base := render(func(*Snapshot) {})
	faster := render(func(s *Snapshot) { s.Speed = 2.0 })
	filtered := render(func(s *Snapshot) { s.LowpassHz = 500 })
	reverbed := render(func(s *Snapshot) { s.ReverbEnabled = true })

	if equalBins(base, faster) {
		t.Error("Expected speed to change the synthetic wave")
	}
	if equalBins(base, filtered) {
		t.Error("Expected the filter factor to change the synthetic wave")
	}
	if equalBins(base, reverbed) {
		t.Error("Expected reverb to change the synthetic wave")
	}
}

// TestSyntheticVisualOnlyAnimates verifies visual-only mode keeps the
// wave moving without any sessions
func TestSyntheticVisualOnlyAnimates(t *testing.T) {
	v := New(testConfig())
	v.now = func() time.Time { return v.start.Add(time.Second) }

	snap := activeSnapshot()
	snap.Active = false
	snap.VisualOnly = true
	v.Update(snap)

	var sum float64
	for _, b := range v.Bins() {
		sum += b
	}
	if sum == 0 {
		t.Error("Expected motion in visual-only mode")
	}
}

// TestSyntheticTransitionFades verifies the inactive transition frame
// fades per bin instead of rendering the wave
func TestSyntheticTransitionFades(t *testing.T) {
	v := New(testConfig())
	for i := range v.bins {
		v.bins[i] = 0.8
	}

	// Recently played, no sessions, no device degradation: fade path.
	snap := activeSnapshot()
	snap.Active = false
	v.Update(snap)
	for i, b := range v.Bins() {
		if math.Abs(b-0.8*0.95) > 1e-9 {
			t.Errorf("Bin %d: expected fade to %f, got %f", i, 0.8*0.95, b)
		}
	}
}

// TestSampleDrivenMapping verifies captured samples drive the bins,
// scaled by volume and clamped to 1
func TestSampleDrivenMapping(t *testing.T) {
	v := New(testConfig())
	samples := make([]float64, 200)
	for i := range samples {
		samples[i] = 0.5
	}
	v.PushSamples(samples)

	snap := activeSnapshot()
	snap.Volume = 1.0
	v.Update(snap)
	for i, b := range v.Bins() {
		if math.Abs(b-0.5) > 1e-9 {
			t.Errorf("Bin %d: expected 0.5, got %f", i, b)
		}
	}

	snap.Volume = 2.0
	v.Update(snap)
	for i, b := range v.Bins() {
		if b != 1.0 {
			t.Errorf("Bin %d: expected clamp to 1.0, got %f", i, b)
		}
	}
}

// TestSampleDrivenFilterFactor verifies the visual filter scales the
// sample magnitudes
func TestSampleDrivenFilterFactor(t *testing.T) {
	v := New(testConfig())
	samples := make([]float64, 200)
	for i := range samples {
		samples[i] = 0.8
	}
	v.PushSamples(samples)

	snap := activeSnapshot()
	snap.LowpassHz = 10000 // factor 0.5
	v.Update(snap)
	for i, b := range v.Bins() {
		if math.Abs(b-0.4) > 1e-9 {
			t.Errorf("Bin %d: expected 0.4, got %f", i, b)
		}
	}
}

// TestSampleDrivenReverbAddsEcho verifies the offset echo component
func TestSampleDrivenReverbAddsEcho(t *testing.T) {
	cfg := testConfig()
	cfg.SampleRate = 1000 // reverb offset = 60 samples
	v := New(cfg)
	samples := make([]float64, 256)
	for i := range samples {
		samples[i] = 0.2
	}
	v.PushSamples(samples)

	snap := activeSnapshot()
	snap.ReverbDelay = 60 * time.Millisecond
	snap.ReverbEnabled = true
	v.Update(snap)

	// 0.2 + 0.2*0.3 per bin with uniform samples.
	for i, b := range v.Bins() {
		if math.Abs(b-0.26) > 1e-9 {
			t.Errorf("Bin %d: expected 0.26, got %f", i, b)
		}
	}
}

// TestRingBounded verifies the ring evicts oldest samples past capacity
func TestRingBounded(t *testing.T) {
	cfg := testConfig()
	cfg.RingSize = 8
	v := New(cfg)

	first := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	second := []float64{9, 10}
	v.PushSamples(first)
	v.PushSamples(second)

	got := v.ringSnapshot()
	want := []float64{3, 4, 5, 6, 7, 8, 9, 10}
	if !equalBins(got, want) {
		t.Errorf("Expected chronological window %v, got %v", want, got)
	}
}

func equalBins(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
