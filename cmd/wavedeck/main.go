package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/spf13/viper"

	"github.com/wavedeck/wavedeck/app"
	"github.com/wavedeck/wavedeck/audio"
	"github.com/wavedeck/wavedeck/browser"
	"github.com/wavedeck/wavedeck/visual"
)

var (
	configFlag = flag.String("config", "", "Path to config file")
	dirFlag    = flag.String("dir", "", "Music directory (overrides config)")
)

func main() {
	flag.Parse()

	cfg := loadConfig()
	if *dirFlag != "" {
		cfg.MusicDir = *dirFlag
	}
	setupLogging(cfg.LogFile)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Restore the terminal even if the app crashes.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "wavedeck crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
		screen.Fini()
	}()

	params := audio.NewEffectParams(cfg.ReverbDelay)
	vis := visual.New(visual.DefaultConfig(cfg.SampleRate))

	// No output device is not fatal: playback degrades to timestamp
	// updates and the visualizer runs synthetic.
	var sinks audio.SinkFactory
	device, err := audio.OpenDevice(beep.SampleRate(cfg.SampleRate), cfg.BufferDuration)
	if err != nil {
		slog.Warn("audio device unavailable, running visual-only", "err", err)
	} else {
		sinks = device
	}

	engine := audio.NewEngine(cfg, params, sinks)
	engine.SetCapture(vis)
	if engine.VisualOnly() {
		engine.AddMessage("Running in visual-only mode (no audio device)")
	}

	a := app.New(screen, cfg, engine, vis, browser.New(cfg.MusicDir))
	if err := a.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "wavedeck: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() *audio.Config {
	v := viper.New()
	v.SetEnvPrefix("WAVEDECK")
	v.AutomaticEnv()

	if *configFlag != "" {
		v.SetConfigFile(*configFlag)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if home, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "wavedeck"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing config file just means defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config read failed", "err", err)
		}
	}
	return audio.LoadConfig(v)
}

// setupLogging sends slog output to the configured file. The terminal
// belongs to the UI, so without a file the logs are discarded.
func setupLogging(path string) {
	var w io.Writer = io.Discard
	if path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w = f
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
