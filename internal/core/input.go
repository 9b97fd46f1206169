package core

// Action is something the player asked for, independent of the key used.
type Action uint8

const (
	ActionNone Action = iota
	ActionJump
	ActionPause
	ActionRestart
	ActionQuit
)

// InputFrame is the set of actions pressed during one tick. The zero value
// is an empty frame.
type InputFrame struct {
	bits uint8
}

// NewInputFrame returns a frame holding actions.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func (a Action) bit() uint8 {
	if a == ActionNone || a > ActionQuit {
		return 0
	}
	return 1 << a
}

// Set records a. ActionNone is ignored.
func (f *InputFrame) Set(a Action) { f.bits |= a.bit() }

// Has reports whether a was pressed.
func (f InputFrame) Has(a Action) bool { return a.bit() != 0 && f.bits&a.bit() != 0 }

// Empty reports whether nothing was pressed.
func (f InputFrame) Empty() bool { return f.bits == 0 }

// Clear forgets every action.
func (f *InputFrame) Clear() { f.bits = 0 }
