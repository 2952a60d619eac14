package audio

import (
	"time"

	"github.com/spf13/viper"
)

// Default engine settings.
const (
	DefaultSampleRate     = 44100
	DefaultBufferDuration = 100 * time.Millisecond
	DefaultReverbDelay    = 60 * time.Millisecond
	DefaultReverbGain     = 0.4
	DefaultMaxMessages    = 5
	DefaultSource         = "example.wav"
)

// Config carries engine-level settings resolved at startup.
type Config struct {
	// SampleRate is the output device rate in Hz.
	SampleRate int

	// BufferDuration determines speaker latency.
	BufferDuration time.Duration

	// ReverbDelay is the fixed offset of the reverb branch.
	ReverbDelay time.Duration

	// ReverbGain scales the reverb branch relative to the main volume.
	ReverbGain float64

	// MaxMessages bounds the diagnostic log, oldest evicted first.
	MaxMessages int

	// Source is the sound played when nothing is selected.
	Source string

	// MusicDir is the file browser's starting directory.
	MusicDir string

	// LogFile receives structured logs; empty discards them.
	LogFile string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		SampleRate:     DefaultSampleRate,
		BufferDuration: DefaultBufferDuration,
		ReverbDelay:    DefaultReverbDelay,
		ReverbGain:     DefaultReverbGain,
		MaxMessages:    DefaultMaxMessages,
		Source:         DefaultSource,
		MusicDir:       ".",
	}
}

// SetDefaults registers config keys with their default values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sample_rate", DefaultSampleRate)
	v.SetDefault("buffer_ms", int(DefaultBufferDuration/time.Millisecond))
	v.SetDefault("reverb_delay_ms", int(DefaultReverbDelay/time.Millisecond))
	v.SetDefault("reverb_gain", DefaultReverbGain)
	v.SetDefault("max_messages", DefaultMaxMessages)
	v.SetDefault("source", DefaultSource)
	v.SetDefault("music_dir", ".")
	v.SetDefault("log_file", "")
}

// LoadConfig resolves settings from the given viper instance, which
// the caller has pointed at its config file and environment.
func LoadConfig(v *viper.Viper) *Config {
	SetDefaults(v)

	cfg := &Config{
		SampleRate:     v.GetInt("sample_rate"),
		BufferDuration: time.Duration(v.GetInt("buffer_ms")) * time.Millisecond,
		ReverbDelay:    time.Duration(v.GetInt("reverb_delay_ms")) * time.Millisecond,
		ReverbGain:     v.GetFloat64("reverb_gain"),
		MaxMessages:    v.GetInt("max_messages"),
		Source:         v.GetString("source"),
		MusicDir:       v.GetString("music_dir"),
		LogFile:        v.GetString("log_file"),
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = DefaultMaxMessages
	}
	return cfg
}
