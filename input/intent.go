package input

// Intent is a semantic command decoded from raw key input. It is the
// entire command surface the application layer dispatches on.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentPlay
	IntentPlayLoop
	IntentSpeedUp
	IntentSpeedDown
	IntentVolumeUp
	IntentVolumeDown
	IntentFilterUp
	IntentFilterDown
	IntentToggleReverb
	IntentSelectNext
	IntentSelectPrev
	IntentSelectConfirm
	IntentDirParent
	IntentQuit
)

// Mode identifies the input mode. Adjustment modes repurpose j/k for
// one parameter; Browser captures navigation keys.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeVolume
	ModePitch
	ModeFilter
	ModeBrowser

	// ModeSame in a binding keeps the current mode.
	ModeSame Mode = 0xFF
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeVolume:
		return "VOLUME"
	case ModePitch:
		return "PITCH"
	case ModeFilter:
		return "FILTER"
	case ModeBrowser:
		return "BROWSE"
	}
	return "UNKNOWN"
}
