package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"
)

// failSecondDecoder succeeds once, then fails; models a source that
// disappears between the dry and reverb opens.
type failSecondDecoder struct {
	opens int
}

func (d *failSecondDecoder) Open(source string) (beep.StreamSeekCloser, beep.Format, error) {
	d.opens++
	if d.opens > 1 {
		return nil, beep.Format{}, errors.Wrap(ErrOpen, "gone")
	}
	format := beep.Format{SampleRate: beep.SampleRate(DefaultSampleRate), NumChannels: 2, Precision: 2}
	return &fakeStream{length: 64}, format, nil
}

// TestBuildGraphLowpassStage verifies the filter stage is present only
// below the disabled cutoff
func TestBuildGraphLowpassStage(t *testing.T) {
	rate := beep.SampleRate(DefaultSampleRate)
	p := NewEffectParams(DefaultReverbDelay)

	s, err := buildGraph(&fakeDecoder{}, "song.wav", p, rate, DefaultReverbGain)
	if err != nil {
		t.Fatalf("Expected graph, got %v", err)
	}
	if _, ok := s.(*lowPass); ok {
		t.Error("Expected no filter stage at the disabled cutoff")
	}

	p.LowpassHz = 1000
	s, err = buildGraph(&fakeDecoder{}, "song.wav", p, rate, DefaultReverbGain)
	if err != nil {
		t.Fatalf("Expected graph, got %v", err)
	}
	if _, ok := s.(*lowPass); !ok {
		t.Error("Expected a low-pass stage below the disabled cutoff")
	}
}

// TestBuildGraphPrimaryFailure verifies a failed primary decode fails
// the whole graph
func TestBuildGraphPrimaryFailure(t *testing.T) {
	rate := beep.SampleRate(DefaultSampleRate)
	p := NewEffectParams(DefaultReverbDelay)
	dec := &fakeDecoder{err: errors.Wrap(ErrOpen, "missing")}

	if _, err := buildGraph(dec, "missing.wav", p, rate, DefaultReverbGain); !errors.Is(err, ErrOpen) {
		t.Errorf("Expected ErrOpen, got %v", err)
	}
}

// TestBuildGraphReverbFailureDegradesDry verifies losing the reverb
// copy does not kill the play call
func TestBuildGraphReverbFailureDegradesDry(t *testing.T) {
	rate := beep.SampleRate(DefaultSampleRate)
	p := NewEffectParams(DefaultReverbDelay)
	p.ReverbEnabled = true
	dec := &failSecondDecoder{}

	s, err := buildGraph(dec, "song.wav", p, rate, DefaultReverbGain)
	if err != nil {
		t.Fatalf("Expected dry graph despite reverb failure, got %v", err)
	}
	if s == nil {
		t.Fatal("Expected a playable stream")
	}
	if dec.opens != 2 {
		t.Errorf("Expected reverb branch to attempt a second open, got %d", dec.opens)
	}
}

// TestBuildGraphStreams verifies the composed graph actually streams
func TestBuildGraphStreams(t *testing.T) {
	rate := beep.SampleRate(DefaultSampleRate)
	p := NewEffectParams(DefaultReverbDelay)
	p.ReverbEnabled = true
	p.LowpassHz = 2000
	p.Speed = 1.5
	p.Volume = 0.8

	s, err := buildGraph(&fakeDecoder{}, "song.wav", p, rate, DefaultReverbGain)
	if err != nil {
		t.Fatalf("Expected graph, got %v", err)
	}
	buf := make([][2]float64, 256)
	n, _ := s.Stream(buf)
	if n == 0 {
		t.Error("Expected the graph to produce samples")
	}
}
