package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, h := s.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) > 0 {
				b.WriteRune(c.Runes[0])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func fullView() View {
	bins := make([]float64, 100)
	for i := range bins {
		bins[i] = float64(i) / 100
	}
	return View{
		Playing:   true,
		Mode:      "NORMAL",
		Speed:     1.0,
		Volume:    1.0,
		LowpassHz: 20000,
		Reverb:    true,
		Sessions:  2,
		Loops:     1,
		Messages:  []string{"first message", "second message"},
		Bins:      bins,
	}
}

// TestDrawFullFrame verifies every section of a normal frame renders
func TestDrawFullFrame(t *testing.T) {
	s := newTestScreen(t, 120, 30)
	v := fullView()
	v.LowpassOff = true
	Draw(s, v)
	s.Show()

	text := screenText(s)
	for _, want := range []string{
		"wavedeck",
		"[PLAYING]",
		"NORMAL",
		"Volume",
		"Playback Speed",
		"Low-Pass Filter",
		"OFF",
		"Reverb: ON",
		"Controls",
		"Playing: 2 (Loops: 1)",
		"Sound Visualization",
		"Messages",
		"first message",
		"second message",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected frame to contain %q", want)
		}
	}
}

// TestDrawVisualOnlyBadge verifies degraded mode is labelled
func TestDrawVisualOnlyBadge(t *testing.T) {
	s := newTestScreen(t, 80, 30)
	v := fullView()
	v.VisualOnly = true
	Draw(s, v)
	s.Show()

	if !strings.Contains(screenText(s), "[VISUAL MODE]") {
		t.Error("Expected visual mode badge")
	}
}

// TestDrawBrowserPopup verifies the listing with the selection marked
func TestDrawBrowserPopup(t *testing.T) {
	s := newTestScreen(t, 80, 30)
	v := fullView()
	v.Browser = &BrowserView{
		Dir:      "/music",
		Names:    []string{"albums", "kick.wav", "snare.wav"},
		Dirs:     []bool{true, false, false},
		Selected: 1,
	}
	Draw(s, v)
	s.Show()

	text := screenText(s)
	for _, want := range []string{"/music", "albums/", "kick.wav", "snare.wav"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected popup to contain %q", want)
		}
	}
}

// TestDrawEmptyBrowser verifies the placeholder row
func TestDrawEmptyBrowser(t *testing.T) {
	s := newTestScreen(t, 80, 30)
	v := fullView()
	v.Browser = &BrowserView{Dir: "/empty"}
	Draw(s, v)
	s.Show()

	if !strings.Contains(screenText(s), "(no audio files)") {
		t.Error("Expected empty-listing placeholder")
	}
}

// TestDrawTinyScreen verifies small terminals get a hint, not a panic
func TestDrawTinyScreen(t *testing.T) {
	s := newTestScreen(t, 10, 4)
	Draw(s, fullView())
	s.Show()

	if !strings.Contains(screenText(s), "terminal ") {
		t.Error("Expected too-small hint")
	}
}

// TestTruncate verifies rune-safe shortening
func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := truncate("hello world", 6); got != "hello…" {
		t.Errorf("Expected ellipsis cut, got %q", got)
	}
	if got := truncate("héllo wörld", 6); got != "héllo…" {
		t.Errorf("Expected rune-safe cut, got %q", got)
	}
	if got := truncate("x", 0); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
