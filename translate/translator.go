// Package translate maps decoded key events to the bytes sent to the host.
//
// Printing keys use the scan code table; arrows and the application keypad
// send VT52 style escape sequences:
//
//	Up, Down, Right, Left    ESC A, ESC B, ESC C, ESC D
//	Keypad 0-9 and .         ESC ?p .. ESC ?y, ESC ?z
//	Keypad / * -             ESC P, ESC Q, ESC R
//	Keypad Enter             ESC ?M
package translate

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/ps2host/scancode"
)

// ESC starts every escape sequence.
const ESC = 0x1B

// Stage names the dispatch step that consumed an event.
type Stage uint8

const (
	StageUnknown Stage = iota
	StageLock
	StageModifier
	StageFunction
	StageKeypad
	StageASCII
	StageExtended
)

func (s Stage) String() string {
	switch s {
	case StageLock:
		return "lock"
	case StageModifier:
		return "modifier"
	case StageFunction:
		return "function"
	case StageKeypad:
		return "keypad"
	case StageASCII:
		return "ascii"
	case StageExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// Escape returns ESC followed by seq.
func Escape(seq string) []byte {
	out := make([]byte, 0, len(seq)+1)
	out = append(out, ESC)
	return append(out, seq...)
}

var functionKeys = map[scancode.ScanCode]bool{
	scancode.CodeF1: true, scancode.CodeF2: true, scancode.CodeF3: true,
	scancode.CodeF4: true, scancode.CodeF5: true, scancode.CodeF6: true,
	scancode.CodeF7: true, scancode.CodeF8: true, scancode.CodeF9: true,
	scancode.CodeF10: true, scancode.CodeF11: true, scancode.CodeF12: true,
}

// keypadEscapes is the application mode keypad. An empty sequence marks a key
// that is consumed without output.
var keypadEscapes = map[scancode.ScanCode]string{
	scancode.CodeKp0:        "?p",
	scancode.CodeKp1:        "?q",
	scancode.CodeKp2:        "?r",
	scancode.CodeKp3:        "?s",
	scancode.CodeKp4:        "?t",
	scancode.CodeKp5:        "?u",
	scancode.CodeKp6:        "?v",
	scancode.CodeKp7:        "?w",
	scancode.CodeKp8:        "?x",
	scancode.CodeKp9:        "?y",
	scancode.CodeKpDot:      "?z",
	scancode.CodeKpAsterisk: "Q",
	scancode.CodeKpMinus:    "R",
	scancode.CodeKpPlus:     "",
	scancode.CodeNumLock:    "",
}

var arrowEscapes = map[scancode.ScanCode]string{
	scancode.CodeUp:    "A",
	scancode.CodeDown:  "B",
	scancode.CodeRight: "C",
	scancode.CodeLeft:  "D",
}

// Translator converts KeyEvents into host bytes.
type Translator struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Translator reading opts on every event.
func New(opts Options, logger *slog.Logger) *Translator {
	if opts == nil {
		opts = StaticOptions{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Translator{opts: opts, logger: logger}
}

// Translate updates m for modifier events and returns the bytes to send, in
// order, together with the stage that consumed the event.
func (t *Translator) Translate(m *ModifierState, ev scancode.KeyEvent) ([]byte, Stage) {
	if ev.Extended {
		return t.extended(m, ev)
	}

	code, release := ev.Code, ev.Release

	if code == scancode.CodeNumLock || code == scancode.CodeScrollLock {
		if !release {
			t.logger.Debug(fmt.Sprintf("KBD: %s pressed", scancode.Name(code, false)))
		}
		return nil, StageLock
	}

	if applyModifier(m, t.opts, code, release, false) {
		return nil, StageModifier
	}

	if functionKeys[code] {
		if !release {
			t.logger.Debug("KBD: function key pressed", "key", scancode.Name(code, false))
		}
		return nil, StageFunction
	}

	if t.opts.ApplicationKeypad() {
		if seq, ok := keypadEscapes[code]; ok {
			if release || seq == "" {
				return nil, StageKeypad
			}
			return t.escape(seq), StageKeypad
		}
	}

	if out, ok := ascii(m, code, release); ok {
		return out, StageASCII
	}

	t.logger.Debug("KBD: unknown scan code", "code", fmt.Sprintf("0x%02x", uint8(code)), "release", release)
	return nil, StageUnknown
}

// ascii looks the key up in the scan code table.
func ascii(m *ModifierState, code scancode.ScanCode, release bool) ([]byte, bool) {
	c := scancode.Lookup(code, m.ShiftIndex())
	if c == 0 {
		return nil, false
	}
	if release {
		return nil, true
	}
	c &= 0x7F
	if m.CapsLock && c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return []byte{c}, true
}

func (t *Translator) extended(m *ModifierState, ev scancode.KeyEvent) ([]byte, Stage) {
	code, release := ev.Code, ev.Release

	if seq, ok := arrowEscapes[code]; ok {
		if release {
			return nil, StageExtended
		}
		return t.escape(seq), StageExtended
	}

	switch code {
	case scancode.CodeInsert, scancode.CodeDelete, scancode.CodeHome,
		scancode.CodeEnd, scancode.CodePageUp, scancode.CodePageDown:
		if !release {
			t.logger.Debug("KBD: editing key pressed", "key", scancode.Name(code, true))
		}
		return nil, StageExtended

	case scancode.CodeKpEnter:
		if release {
			return nil, StageExtended
		}
		if t.opts.ApplicationKeypad() {
			return t.escape("?M"), StageExtended
		}
		return []byte{'\r'}, StageExtended

	case scancode.CodeKpSlash:
		if release {
			return nil, StageExtended
		}
		if t.opts.ApplicationKeypad() {
			return t.escape("P"), StageExtended
		}
		return []byte{'/'}, StageExtended

	case scancode.CodeAlt, scancode.CodeControl:
		// Right alt is consumed and right control is not implemented; neither
		// changes the modifier state.
		applyModifier(m, t.opts, code, release, true)
		return nil, StageExtended

	case scancode.CodeLeftWindows, scancode.CodeRightWindows, scancode.CodeMenu:
		if !release {
			t.logger.Debug("KBD: Windows key pressed", "key", scancode.Name(code, true))
		}
		return nil, StageExtended

	case scancode.CodePrintScreenFirst, scancode.CodePrintScreenSecond:
		// Print Screen sends two extended codes; each half is ignored on its own.
		if !release {
			t.logger.Debug("KBD: PRINT SCREEN pressed", "code", fmt.Sprintf("0x%02x", uint8(code)))
		}
		return nil, StageExtended
	}

	t.logger.Debug("KBD: unknown extended key code", "code", fmt.Sprintf("E0 0x%02x", uint8(code)))
	return nil, StageUnknown
}

func (t *Translator) escape(seq string) []byte {
	t.logger.Debug("KBD: send escape", "seq", seq)
	return Escape(seq)
}
