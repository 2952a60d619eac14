package audio

import (
	"errors"
)

// Sentinel errors. Per-call failures are converted into diagnostic log
// entries at the Play/ReconcileLoops boundary; none of them halt the
// tick loop.
var (
	// ErrNoDevice means no audio output device could be opened.
	// The engine degrades to visual-only mode, it is not fatal.
	ErrNoDevice = errors.New("no audio output device available")

	// ErrOpen means a source could not be opened for a play call.
	ErrOpen = errors.New("cannot open audio source")

	// ErrDecode means a source opened but could not be decoded.
	ErrDecode = errors.New("cannot decode audio source")
)
