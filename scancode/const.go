package scancode

// Prefix bytes
const (
	PrefixExtended = 0xE0 // next code is an extended key
	PrefixPause    = 0xE1 // start of the Pause/Break sequence
	PrefixRelease  = 0xF0 // next code is a key release
)

// Special codes sent by the keyboard itself, never followed by a key code.
const (
	SpecialAck          = 0xFA // Acknowledge
	SpecialSelfTestPass = 0xAA // Basic assurance test passed
	SpecialEcho         = 0xEE // Echo response
	SpecialResend       = 0xFE // Resend request
	SpecialOverrun      = 0x00 // Key detection error / buffer overrun
	SpecialError        = 0xFF // Key detection error / buffer overrun
)

// Scan code set 2 key codes (non-extended unless noted).
const (
	// Modifiers
	CodeAlt        ScanCode = 0x11 // Left Alt, Right Alt with E0
	CodeLeftShift  ScanCode = 0x12
	CodeControl    ScanCode = 0x14 // Left Control, Right Control with E0
	CodeCapsLock   ScanCode = 0x58
	CodeRightShift ScanCode = 0x59

	// Locks
	CodeNumLock    ScanCode = 0x77
	CodeScrollLock ScanCode = 0x7E

	// Function keys
	CodeF1  ScanCode = 0x05
	CodeF2  ScanCode = 0x06
	CodeF3  ScanCode = 0x04
	CodeF4  ScanCode = 0x0C
	CodeF5  ScanCode = 0x03
	CodeF6  ScanCode = 0x0B
	CodeF7  ScanCode = 0x83 // the only key code above 0x7F
	CodeF8  ScanCode = 0x0A
	CodeF9  ScanCode = 0x01
	CodeF10 ScanCode = 0x09
	CodeF11 ScanCode = 0x78
	CodeF12 ScanCode = 0x07

	// Numeric keypad
	CodeKp0        ScanCode = 0x70
	CodeKp1        ScanCode = 0x69
	CodeKp2        ScanCode = 0x72
	CodeKp3        ScanCode = 0x7A
	CodeKp4        ScanCode = 0x6B
	CodeKp5        ScanCode = 0x73
	CodeKp6        ScanCode = 0x74
	CodeKp7        ScanCode = 0x6C
	CodeKp8        ScanCode = 0x75
	CodeKp9        ScanCode = 0x7D
	CodeKpDot      ScanCode = 0x71
	CodeKpAsterisk ScanCode = 0x7C
	CodeKpMinus    ScanCode = 0x7B
	CodeKpPlus     ScanCode = 0x79
	CodeKpSlash    ScanCode = 0x4A // extended
	CodeKpEnter    ScanCode = 0x5A // extended

	// Arrow keys (extended)
	CodeUp    ScanCode = 0x75
	CodeDown  ScanCode = 0x72
	CodeRight ScanCode = 0x74
	CodeLeft  ScanCode = 0x6B

	// Editing keypad (extended)
	CodeInsert   ScanCode = 0x70
	CodeDelete   ScanCode = 0x71
	CodeHome     ScanCode = 0x6C
	CodeEnd      ScanCode = 0x69
	CodePageUp   ScanCode = 0x7D
	CodePageDown ScanCode = 0x7A

	// Windows keys (extended)
	CodeLeftWindows  ScanCode = 0x1F
	CodeRightWindows ScanCode = 0x27
	CodeMenu         ScanCode = 0x2F

	// Print Screen halves (extended)
	CodePrintScreenFirst  ScanCode = 0x12
	CodePrintScreenSecond ScanCode = 0x7C

	// A few plain keys referenced by tests and tools
	CodeA         ScanCode = 0x1C
	CodeQ         ScanCode = 0x15
	CodeZ         ScanCode = 0x1A
	Code1         ScanCode = 0x16
	Code2         ScanCode = 0x1E
	Code6         ScanCode = 0x36
	CodeSpace     ScanCode = 0x29
	CodeEnter     ScanCode = 0x5A
	CodeEscape    ScanCode = 0x76
	CodeBackspace ScanCode = 0x66
	CodeTab       ScanCode = 0x0D
)

// PauseSequence is the continuation that must follow PrefixPause.
var PauseSequence = [...]byte{0x14, 0x77, 0xE1, 0xF0, 0x14, 0xF0, 0x77}

// keyName maps non-extended codes to human-readable names.
var keyName = map[ScanCode]string{
	CodeF1: "F1", CodeF2: "F2", CodeF3: "F3", CodeF4: "F4", CodeF5: "F5", CodeF6: "F6",
	CodeF7: "F7", CodeF8: "F8", CodeF9: "F9", CodeF10: "F10", CodeF11: "F11", CodeF12: "F12",

	CodeAlt:        "LeftAlt",
	CodeLeftShift:  "LeftShift",
	CodeControl:    "LeftControl",
	CodeCapsLock:   "CapsLock",
	CodeRightShift: "RightShift",
	CodeNumLock:    "NumLock",
	CodeScrollLock: "ScrollLock",

	CodeKp0: "Kp0", CodeKp1: "Kp1", CodeKp2: "Kp2", CodeKp3: "Kp3", CodeKp4: "Kp4",
	CodeKp5: "Kp5", CodeKp6: "Kp6", CodeKp7: "Kp7", CodeKp8: "Kp8", CodeKp9: "Kp9",
	CodeKpDot:      "Kp.",
	CodeKpAsterisk: "Kp*",
	CodeKpMinus:    "Kp-",
	CodeKpPlus:     "Kp+",

	CodeSpace:     "Space",
	CodeEnter:     "Enter",
	CodeEscape:    "Escape",
	CodeBackspace: "Backspace",
	CodeTab:       "Tab",
}

// extendedName maps extended codes to human-readable names.
var extendedName = map[ScanCode]string{
	CodeUp:    "Up",
	CodeDown:  "Down",
	CodeRight: "Right",
	CodeLeft:  "Left",

	CodeInsert:   "Insert",
	CodeDelete:   "Delete",
	CodeHome:     "Home",
	CodeEnd:      "End",
	CodePageUp:   "PageUp",
	CodePageDown: "PageDown",

	CodeKpSlash: "Kp/",
	CodeKpEnter: "KpEnter",

	CodeAlt:     "RightAlt",
	CodeControl: "RightControl",

	CodeLeftWindows:  "LeftWindows",
	CodeRightWindows: "RightWindows",
	CodeMenu:         "Menu",

	CodePrintScreenFirst:  "PrintScreen",
	CodePrintScreenSecond: "PrintScreen",
}
