package audio

import (
	"github.com/gopxl/beep"
)

// buildGraph composes the processing chain for one play request:
// decode, resample by speed, apply gain, optionally mix in a delayed
// reverb branch, then low-pass the merged stream when the filter is on.
//
// The reverb branch decodes the source a second time instead of
// duplicating a buffer: two independent streams with their own read
// cursors can carry different time offsets without seekable buffering.
// A reverb copy that fails to open degrades the call to a dry mix
// rather than failing it.
func buildGraph(dec Decoder, source string, p *EffectParams, rate beep.SampleRate, reverbGain float64) (beep.Streamer, error) {
	primary, format, err := dec.Open(source)
	if err != nil {
		return nil, err
	}
	stream := processBranch(primary, format, p.Speed, p.Volume, rate)

	if p.ReverbEnabled {
		if echo, echoFormat, err := dec.Open(source); err == nil {
			wet := processBranch(echo, echoFormat, p.Speed, p.Volume*reverbGain, rate)
			wet = newDelay(wet, p.ReverbDelay, rate)
			stream = beep.Mix(stream, wet)
		}
	}

	if p.LowpassActive() {
		stream = newLowPass(stream, p.LowpassHz, rate)
	}
	return stream, nil
}

// processBranch converts a decoded stream to the device rate, applies
// the time scale and the gain.
func processBranch(s beep.Streamer, format beep.Format, speed, vol float64, rate beep.SampleRate) beep.Streamer {
	if format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, s)
	}
	if speed != 1.0 {
		s = beep.ResampleRatio(resampleQuality, speed, s)
	}
	return newGain(s, vol)
}
