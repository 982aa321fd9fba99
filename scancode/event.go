// Package scancode decodes PS/2 scan code set 2 byte streams into key events
// and holds the fixed scan code to ASCII translation table.
package scancode

import "fmt"

// ScanCode identifies a physical key. Table lookups only cover 0x00-0x7F.
type ScanCode uint8

// KeyEvent is one logical keystroke produced by the Decoder.
type KeyEvent struct {
	Code     ScanCode
	Release  bool // a release prefix preceded the code
	Extended bool // an extended prefix preceded the code
}

// Press returns a non-extended press event for code.
func Press(code ScanCode) KeyEvent { return KeyEvent{Code: code} }

// ReleaseOf returns a non-extended release event for code.
func ReleaseOf(code ScanCode) KeyEvent { return KeyEvent{Code: code, Release: true} }

// Name returns a human-readable name for code, or "" if the key is unnamed.
func Name(code ScanCode, extended bool) string {
	if extended {
		return extendedName[code]
	}
	if n, ok := keyName[code]; ok {
		return n
	}
	if c := Lookup(code, 0); c > ' ' && c < 0x7F {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		return string(rune(c))
	}
	return ""
}

func (ev KeyEvent) String() string {
	prefix := ""
	if ev.Extended {
		prefix += "E0 "
	}
	if ev.Release {
		prefix += "F0 "
	}
	name := Name(ev.Code, ev.Extended)
	if name == "" {
		return fmt.Sprintf("%s%02X", prefix, uint8(ev.Code))
	}
	return fmt.Sprintf("%s%02X (%s)", prefix, uint8(ev.Code), name)
}
