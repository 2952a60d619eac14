// wavegen writes a short test-tone WAV file, useful as the default
// sound wavedeck plays when nothing is selected.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	outFlag  = flag.String("o", "example.wav", "Output file")
	freqFlag = flag.Float64("freq", 440, "Tone frequency in Hz")
	durFlag  = flag.Duration("dur", 2*time.Second, "Tone duration")
	rateFlag = flag.Int("rate", 44100, "Sample rate in Hz")
)

func main() {
	flag.Parse()

	if err := writeTone(*outFlag, *freqFlag, *durFlag, *rateFlag); err != nil {
		fmt.Fprintf(os.Stderr, "wavegen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%.0f Hz, %s)\n", *outFlag, *freqFlag, *durFlag)
}

func writeTone(path string, freq float64, dur time.Duration, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n := int(float64(rate) * dur.Seconds())
	data := make([]int, n)
	for i := range data {
		t := float64(i) / float64(rate)
		// Short attack/release ramps avoid clicks at the edges.
		env := 1.0
		ramp := float64(rate) * 0.01
		if float64(i) < ramp {
			env = float64(i) / ramp
		} else if float64(n-i) < ramp {
			env = float64(n-i) / ramp
		}
		data[i] = int(env * 0.6 * math.MaxInt16 * math.Sin(2*math.Pi*freq*t))
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
