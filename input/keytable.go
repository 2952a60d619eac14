package input

import "github.com/gdamore/tcell/v2"

// Binding pairs the intent a key produces with the mode the machine
// transitions to. ModeSame means no transition.
type Binding struct {
	Intent Intent
	Next   Mode
}

// KeyTable is the single dispatch table from (mode, key) to
// (intent, next mode). All mode transitions live here.
type KeyTable struct {
	Runes map[Mode]map[rune]Binding
	Keys  map[Mode]map[tcell.Key]Binding
}

// DefaultKeyTable returns the default bindings.
func DefaultKeyTable() *KeyTable {
	adjust := func(down, up Intent) map[rune]Binding {
		return map[rune]Binding{
			'j': {down, ModeSame},
			'k': {up, ModeSame},
			'-': {down, ModeSame},
			'+': {up, ModeSame},
			'q': {IntentQuit, ModeSame},
		}
	}

	return &KeyTable{
		Runes: map[Mode]map[rune]Binding{
			ModeNormal: {
				'p': {IntentPlay, ModeSame},
				'r': {IntentPlayLoop, ModeSame},
				'j': {IntentSpeedDown, ModeSame},
				'k': {IntentSpeedUp, ModeSame},
				'v': {IntentVolumeDown, ModeSame},
				'b': {IntentVolumeUp, ModeSame},
				'f': {IntentFilterDown, ModeSame},
				'g': {IntentFilterUp, ModeSame},
				'e': {IntentToggleReverb, ModeSame},
				'q': {IntentQuit, ModeSame},
				'V': {IntentNone, ModeVolume},
				'P': {IntentNone, ModePitch},
				'F': {IntentNone, ModeFilter},
				'o': {IntentNone, ModeBrowser},
			},
			ModeVolume: adjust(IntentVolumeDown, IntentVolumeUp),
			ModePitch:  adjust(IntentSpeedDown, IntentSpeedUp),
			ModeFilter: adjust(IntentFilterDown, IntentFilterUp),
			ModeBrowser: {
				'j': {IntentSelectNext, ModeSame},
				'k': {IntentSelectPrev, ModeSame},
				'h': {IntentDirParent, ModeSame},
				'q': {IntentQuit, ModeSame},
			},
		},
		Keys: map[Mode]map[tcell.Key]Binding{
			ModeNormal: {
				tcell.KeyTab:   {IntentNone, ModeBrowser},
				tcell.KeyCtrlC: {IntentQuit, ModeSame},
			},
			ModeVolume: {
				tcell.KeyEscape: {IntentNone, ModeNormal},
				tcell.KeyEnter:  {IntentNone, ModeNormal},
				tcell.KeyCtrlC:  {IntentQuit, ModeSame},
			},
			ModePitch: {
				tcell.KeyEscape: {IntentNone, ModeNormal},
				tcell.KeyEnter:  {IntentNone, ModeNormal},
				tcell.KeyCtrlC:  {IntentQuit, ModeSame},
			},
			ModeFilter: {
				tcell.KeyEscape: {IntentNone, ModeNormal},
				tcell.KeyEnter:  {IntentNone, ModeNormal},
				tcell.KeyCtrlC:  {IntentQuit, ModeSame},
			},
			ModeBrowser: {
				tcell.KeyEscape:     {IntentNone, ModeNormal},
				tcell.KeyEnter:      {IntentSelectConfirm, ModeSame},
				tcell.KeyDown:       {IntentSelectNext, ModeSame},
				tcell.KeyUp:         {IntentSelectPrev, ModeSame},
				tcell.KeyBackspace:  {IntentDirParent, ModeSame},
				tcell.KeyBackspace2: {IntentDirParent, ModeSame},
				tcell.KeyCtrlC:      {IntentQuit, ModeSame},
			},
		},
	}
}
