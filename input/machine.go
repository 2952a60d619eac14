package input

import "github.com/gdamore/tcell/v2"

// Machine converts key events into intents via the key table.
// Mode transitions happen only through table entries or an explicit
// SetMode from the application layer (e.g. leaving the browser after
// a file was confirmed).
type Machine struct {
	mode  Mode
	table *KeyTable
}

// NewMachine creates a machine in normal mode with default bindings.
func NewMachine() *Machine {
	return &Machine{mode: ModeNormal, table: DefaultKeyTable()}
}

// Mode returns the current input mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// SetMode forces a mode, bypassing the table.
func (m *Machine) SetMode(mode Mode) {
	if mode != ModeSame {
		m.mode = mode
	}
}

// Process decodes one key event. Unknown keys yield IntentNone and
// leave the mode unchanged.
func (m *Machine) Process(ev *tcell.EventKey) Intent {
	var (
		b  Binding
		ok bool
	)
	if ev.Key() == tcell.KeyRune {
		b, ok = m.table.Runes[m.mode][ev.Rune()]
	} else {
		b, ok = m.table.Keys[m.mode][ev.Key()]
	}
	if !ok {
		return IntentNone
	}
	if b.Next != ModeSame {
		m.mode = b.Next
	}
	return b.Intent
}
