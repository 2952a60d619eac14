package audio

import "time"

// ParamKind selects which scalar parameter Adjust operates on.
type ParamKind uint8

const (
	ParamSpeed ParamKind = iota
	ParamVolume
	ParamLowpass
)

// Parameter ranges. Mutators saturate at the bounds; a value never
// leaves its closed interval no matter how many adjustments occur.
const (
	SpeedMin  = 0.1
	SpeedMax  = 3.0
	SpeedStep = 0.1

	VolumeMin  = 0.0
	VolumeMax  = 2.0
	VolumeStep = 0.1

	LowpassMinHz  = 500
	LowpassStepHz = 500

	// LowpassDisabledHz doubles as the maximum cutoff. At this value
	// the filter stage is bypassed entirely.
	LowpassDisabledHz = 20000
)

// EffectParams holds the user-adjustable effect values. Mutations only
// affect mix graphs built afterwards; running sessions keep the
// parameters they were mixed with.
type EffectParams struct {
	Speed         float64
	Volume        float64
	LowpassHz     int
	ReverbEnabled bool

	// ReverbDelay is fixed at construction, not user-adjustable.
	ReverbDelay time.Duration
}

// NewEffectParams returns parameters at their defaults.
func NewEffectParams(reverbDelay time.Duration) *EffectParams {
	return &EffectParams{
		Speed:       1.0,
		Volume:      1.0,
		LowpassHz:   LowpassDisabledHz,
		ReverbDelay: reverbDelay,
	}
}

// Adjust steps one parameter up or down and returns the new clamped
// value. Out-of-range requests saturate silently; there is no error path.
func (p *EffectParams) Adjust(kind ParamKind, increase bool) float64 {
	switch kind {
	case ParamSpeed:
		p.Speed = stepFloat(p.Speed, SpeedStep, SpeedMin, SpeedMax, increase)
		return p.Speed
	case ParamVolume:
		p.Volume = stepFloat(p.Volume, VolumeStep, VolumeMin, VolumeMax, increase)
		return p.Volume
	case ParamLowpass:
		p.LowpassHz = stepInt(p.LowpassHz, LowpassStepHz, LowpassMinHz, LowpassDisabledHz, increase)
		return float64(p.LowpassHz)
	}
	return 0
}

// ToggleReverb flips the reverb flag and returns the new state.
func (p *EffectParams) ToggleReverb() bool {
	p.ReverbEnabled = !p.ReverbEnabled
	return p.ReverbEnabled
}

// LowpassActive reports whether the cutoff is below the disabled mark.
func (p *EffectParams) LowpassActive() bool {
	return p.LowpassHz < LowpassDisabledHz
}

func stepFloat(v, step, min, max float64, increase bool) float64 {
	if increase {
		v += step
	} else {
		v -= step
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func stepInt(v, step, min, max int, increase bool) int {
	if increase {
		v += step
	} else {
		v -= step
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
