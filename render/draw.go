package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// View is the read-only application state one draw pass renders.
type View struct {
	Playing    bool
	VisualOnly bool
	Mode       string
	Speed      float64
	Volume     float64
	LowpassHz  int
	LowpassOff bool
	Reverb     bool
	Sessions   int
	Loops      int
	Messages   []string
	Bins       []float64
	Browser    *BrowserView
}

// BrowserView is the file browser popup state.
type BrowserView struct {
	Dir      string
	Names    []string
	Dirs     []bool
	Selected int
}

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleVolume   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleSpeed    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFilter   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleReverbOn = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWaveOn   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSelect   = tcell.StyleDefault.Reverse(true)
)

// waveBlocks maps eighths of a cell to partial block glyphs.
var waveBlocks = []rune(" ▁▂▃▄▅▆▇█")

// Draw renders the whole UI for one frame. The caller shows the screen.
func Draw(s tcell.Screen, v View) {
	s.Clear()
	w, h := s.Size()
	if w < 20 || h < 16 {
		drawText(s, 0, 0, styleDefault, "terminal too small")
		return
	}

	y := 0
	y = drawTitle(s, y, w, v)
	y = drawGauge(s, y, w, "Volume", v.Volume/2.0, fmt.Sprintf("%.1fx", v.Volume), styleVolume)
	y = drawGauge(s, y, w, "Playback Speed", v.Speed/3.0, fmt.Sprintf("%.1fx", v.Speed), styleSpeed)
	y = drawEffects(s, y, w, v)
	y = drawControls(s, y, w, v)

	msgRows := 0
	if len(v.Messages) > 0 {
		msgRows = len(v.Messages) + 2
	}
	waveRows := h - y - msgRows
	if waveRows >= 3 {
		drawWaveform(s, y, w, waveRows, v)
		y += waveRows
	}
	if msgRows > 0 {
		drawMessages(s, y, w, msgRows, v.Messages)
	}

	if v.Browser != nil {
		drawBrowser(s, w, h, v.Browser)
	}
}

func drawTitle(s tcell.Screen, y, w int, v View) int {
	status := ""
	if v.Playing {
		if v.VisualOnly {
			status = " [VISUAL MODE]"
		} else {
			status = " [PLAYING]"
		}
	}
	drawBox(s, 0, y, w, 3, "wavedeck", styleTitle)
	text := fmt.Sprintf("Audio Player%s  --  %s", status, v.Mode)
	drawText(s, (w-len(text))/2, y+1, styleTitle, text)
	return y + 3
}

func drawGauge(s tcell.Screen, y, w int, title string, frac float64, label string, style tcell.Style) int {
	drawBox(s, 0, y, w, 3, title, styleDefault)
	inner := w - 2
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(inner))
	for x := 0; x < inner; x++ {
		ch := ' '
		st := styleDim
		if x < filled {
			ch = '█'
			st = style
		}
		s.SetContent(1+x, y+1, ch, nil, st)
	}
	drawText(s, 2, y+1, style.Reverse(true), label)
	return y + 3
}

func drawEffects(s tcell.Screen, y, w int, v View) int {
	split := w * 7 / 10

	filterLabel := fmt.Sprintf("%dHz", v.LowpassHz)
	frac := float64(v.LowpassHz) / 20000.0
	if v.LowpassOff {
		filterLabel = "OFF"
		frac = 1.0
	}
	drawBox(s, 0, y, split, 3, "Low-Pass Filter", styleDefault)
	inner := split - 2
	filled := int(frac * float64(inner))
	for x := 0; x < inner; x++ {
		ch := ' '
		st := styleDim
		if x < filled {
			ch = '█'
			st = styleFilter
		}
		s.SetContent(1+x, y+1, ch, nil, st)
	}
	drawText(s, 2, y+1, styleFilter.Reverse(true), filterLabel)

	title := "Reverb: OFF"
	st := styleDim
	label := "Disabled"
	if v.Reverb {
		title = "Reverb: ON"
		st = styleReverbOn
		label = "Enabled"
	}
	drawBox(s, split, y, w-split, 3, title, st)
	drawText(s, split+2, y+1, st, label)
	return y + 3
}

func drawControls(s tcell.Screen, y, w int, v View) int {
	text := "p:Play  r:Loop  j/k:Pitch  v/b:Vol  f/g:Filter  e:Reverb  o:Files  q:Quit"
	if v.Sessions > 0 {
		text += fmt.Sprintf("  |  Playing: %d (Loops: %d)", v.Sessions, v.Loops)
	}
	drawBox(s, 0, y, w, 3, "Controls", styleDefault)
	drawText(s, (w-len(text))/2, y+1, styleDefault, text)
	return y + 3
}

func drawWaveform(s tcell.Screen, y, w, h int, v View) {
	style := styleDim
	if v.Playing {
		style = styleWaveOn
	}
	drawBox(s, 0, y, w, h, "Sound Visualization", style)

	inner := w - 2
	rows := h - 2
	if inner <= 0 || rows <= 0 || len(v.Bins) == 0 {
		return
	}
	for col := 0; col < inner; col++ {
		bin := v.Bins[col*len(v.Bins)/inner]
		eighths := int(bin * float64(rows) * 8)
		for row := 0; row < rows; row++ {
			rem := eighths - row*8
			if rem <= 0 {
				break
			}
			if rem > 8 {
				rem = 8
			}
			s.SetContent(1+col, y+h-2-row, waveBlocks[rem], nil, style)
		}
	}
}

func drawMessages(s tcell.Screen, y, w, h int, messages []string) {
	drawBox(s, 0, y, w, h, "Messages", styleDim)
	for i, msg := range messages {
		if i >= h-2 {
			break
		}
		drawText(s, 2, y+1+i, styleDefault, truncate(msg, w-4))
	}
}

func drawBrowser(s tcell.Screen, w, h int, bv *BrowserView) {
	bw := w * 3 / 4
	bh := h * 3 / 4
	if bw < 20 {
		bw = w
	}
	if bh < 6 {
		bh = h
	}
	x0 := (w - bw) / 2
	y0 := (h - bh) / 2

	for y := y0; y < y0+bh; y++ {
		for x := x0; x < x0+bw; x++ {
			s.SetContent(x, y, ' ', nil, styleDefault)
		}
	}
	drawBox(s, x0, y0, bw, bh, truncate(bv.Dir, bw-4), styleTitle)

	rows := bh - 2
	// Keep the selection in view.
	top := 0
	if bv.Selected >= rows {
		top = bv.Selected - rows + 1
	}
	for i := 0; i < rows && top+i < len(bv.Names); i++ {
		idx := top + i
		name := bv.Names[idx]
		if bv.Dirs[idx] {
			name += "/"
		}
		st := styleDefault
		if idx == bv.Selected {
			st = styleSelect
		}
		drawText(s, x0+2, y0+1+i, st, truncate(name, bw-4))
	}
	if len(bv.Names) == 0 {
		drawText(s, x0+2, y0+1, styleDim, "(no audio files)")
	}
}

func drawBox(s tcell.Screen, x, y, w, h int, title string, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		s.SetContent(x+i, y, '─', nil, style)
		s.SetContent(x+i, y+h-1, '─', nil, style)
	}
	for i := 1; i < h-1; i++ {
		s.SetContent(x, y+i, '│', nil, style)
		s.SetContent(x+w-1, y+i, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
	if title != "" && len(title) < w-4 {
		drawText(s, x+2, y, style, " "+title+" ")
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	if x < 0 {
		x = 0
	}
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
