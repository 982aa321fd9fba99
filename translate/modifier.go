package translate

import "github.com/Alia5/ps2host/scancode"

// ModifierState tracks the modifier keys that affect translation.
// The bits are independent and persist until a modifier event changes them.
type ModifierState struct {
	LeftShift  bool
	RightShift bool
	Control    bool
	CapsLock   bool
}

// Shift reports whether either shift key is held.
func (m ModifierState) Shift() bool {
	return m.LeftShift || m.RightShift
}

// ShiftIndex selects the translation table column for the current modifiers.
func (m ModifierState) ShiftIndex() int {
	return scancode.ShiftIndex(m.Shift(), m.Control)
}

// applyModifier handles shift, control, caps lock and alt. It reports whether
// the event was consumed. Right control arrives here with extended set and is
// left unhandled.
func applyModifier(m *ModifierState, opts Options, code scancode.ScanCode, release, extended bool) bool {
	// Only the physical left keys swap; right control keeps its own code.
	if !extended && opts.SwapCapsAndControl() {
		switch code {
		case scancode.CodeCapsLock:
			code = scancode.CodeControl
		case scancode.CodeControl:
			code = scancode.CodeCapsLock
		}
	}

	switch code {
	case scancode.CodeLeftShift:
		m.LeftShift = !release
		return true
	case scancode.CodeRightShift:
		m.RightShift = !release
		return true
	case scancode.CodeControl:
		if extended {
			return false
		}
		m.Control = !release
		return true
	case scancode.CodeCapsLock:
		if release {
			return true
		}
		m.CapsLock = !m.CapsLock
		return true
	case scancode.CodeAlt:
		return true
	}
	return false
}
