package scancode

// table translates a scan code and shift index into ASCII. A zero entry means
// the key has no character in that modifier state. Columns are indexed by
// ShiftIndex: plain, shift, control, control+shift.
var table = [128][4]byte{
	{0, 0, 0, 0},         // 0x00
	{0, 0, 0, 0},         // 0x01 F9
	{0, 0, 0, 0},         // 0x02
	{0, 0, 0, 0},         // 0x03 F5
	{0, 0, 0, 0},         // 0x04 F3
	{0, 0, 0, 0},         // 0x05 F1
	{0, 0, 0, 0},         // 0x06 F2
	{0, 0, 0, 0},         // 0x07 F12
	{0, 0, 0, 0},         // 0x08
	{0, 0, 0, 0},         // 0x09 F10
	{0, 0, 0, 0},         // 0x0A F8
	{0, 0, 0, 0},         // 0x0B F6
	{0, 0, 0, 0},         // 0x0C F4
	{0x09, 0x09, 0, 0},   // 0x0D Tab
	{'`', '~', 0, 0},     // 0x0E Grave
	{0, 0, 0, 0},         // 0x0F
	{0, 0, 0, 0},         // 0x10
	{0, 0, 0, 0},         // 0x11 Alt
	{0, 0, 0, 0},         // 0x12 LeftShift
	{0, 0, 0, 0},         // 0x13
	{0, 0, 0, 0},         // 0x14 Control
	{'q', 'Q', 0x11, 0},  // 0x15 Q
	{'1', '!', 0, 0},     // 0x16 1
	{0, 0, 0, 0},         // 0x17
	{0, 0, 0, 0},         // 0x18
	{0, 0, 0, 0},         // 0x19
	{'z', 'Z', 0x1A, 0},  // 0x1A Z
	{'s', 'S', 0x13, 0},  // 0x1B S
	{'a', 'A', 0x01, 0},  // 0x1C A
	{'w', 'W', 0x17, 0},  // 0x1D W
	{'2', '@', 0, 0x80},  // 0x1E 2
	{0, 0, 0, 0},         // 0x1F
	{0, 0, 0, 0},         // 0x20
	{'c', 'C', 0x03, 0},  // 0x21 C
	{'x', 'X', 0x18, 0},  // 0x22 X
	{'d', 'D', 0x04, 0},  // 0x23 D
	{'e', 'E', 0x05, 0},  // 0x24 E
	{'4', '$', 0, 0},     // 0x25 4
	{'3', '#', 0, 0},     // 0x26 3
	{0, 0, 0, 0},         // 0x27
	{0, 0, 0, 0},         // 0x28
	{' ', ' ', 0, 0},     // 0x29 Space
	{'v', 'V', 0x16, 0},  // 0x2A V
	{'f', 'F', 0x06, 0},  // 0x2B F
	{'t', 'T', 0x14, 0},  // 0x2C T
	{'r', 'R', 0x12, 0},  // 0x2D R
	{'5', '%', 0, 0},     // 0x2E 5
	{0, 0, 0, 0},         // 0x2F
	{0, 0, 0, 0},         // 0x30
	{'n', 'N', 0x0E, 0},  // 0x31 N
	{'b', 'B', 0x02, 0},  // 0x32 B
	{'h', 'H', 0x08, 0},  // 0x33 H
	{'g', 'G', 0x07, 0},  // 0x34 G
	{'y', 'Y', 0x19, 0},  // 0x35 Y
	{'6', '^', 0, 0x1E},  // 0x36 6
	{0, 0, 0, 0},         // 0x37
	{0, 0, 0, 0},         // 0x38
	{0, 0, 0, 0},         // 0x39
	{'m', 'M', 0x0D, 0},  // 0x3A M
	{'j', 'J', 0x0A, 0},  // 0x3B J
	{'u', 'U', 0x15, 0},  // 0x3C U
	{'7', '&', 0, 0},     // 0x3D 7
	{'8', '*', 0, 0},     // 0x3E 8
	{0, 0, 0, 0},         // 0x3F
	{0, 0, 0, 0},         // 0x40
	{',', '<', 0, 0},     // 0x41 Comma
	{'k', 'K', 0x0B, 0},  // 0x42 K
	{'i', 'I', 0x09, 0},  // 0x43 I
	{'o', 'O', 0x0F, 0},  // 0x44 O
	{'0', ')', 0, 0},     // 0x45 0
	{'9', '(', 0, 0},     // 0x46 9
	{0, 0, 0, 0},         // 0x47
	{0, 0, 0, 0},         // 0x48
	{'.', '>', 0, 0},     // 0x49 Period
	{'/', '?', 0, 0},     // 0x4A Slash
	{'l', 'L', 0x0C, 0},  // 0x4B L
	{';', ':', 0, 0},     // 0x4C Semicolon
	{'p', 'P', 0x10, 0},  // 0x4D P
	{'-', '_', 0, 0x1F},  // 0x4E Minus
	{0, 0, 0, 0},         // 0x4F
	{0, 0, 0, 0},         // 0x50
	{0, 0, 0, 0},         // 0x51
	{0x27, '"', 0, 0},    // 0x52 Apostrophe
	{0, 0, 0, 0},         // 0x53
	{'[', '{', 0x1B, 0},  // 0x54 LeftBracket
	{'=', '+', 0, 0},     // 0x55 Equal
	{0, 0, 0, 0},         // 0x56
	{0, 0, 0, 0},         // 0x57
	{0, 0, 0, 0},         // 0x58 CapsLock
	{0, 0, 0, 0},         // 0x59 RightShift
	{0x0D, 0x0D, 0, 0},   // 0x5A Enter
	{']', '}', 0x1D, 0},  // 0x5B RightBracket
	{0, 0, 0, 0},         // 0x5C
	{'\\', '|', 0x1C, 0}, // 0x5D Backslash
	{0, 0, 0, 0},         // 0x5E
	{0, 0, 0, 0},         // 0x5F
	{0, 0, 0, 0},         // 0x60
	{0, 0, 0, 0},         // 0x61
	{0, 0, 0, 0},         // 0x62
	{0, 0, 0, 0},         // 0x63
	{0, 0, 0, 0},         // 0x64
	{0, 0, 0, 0},         // 0x65
	{0x08, 0x08, 0, 0},   // 0x66 Backspace
	{0, 0, 0, 0},         // 0x67
	{0, 0, 0, 0},         // 0x68
	{'1', 0, 0, 0},       // 0x69 Kp1
	{0, 0, 0, 0},         // 0x6A
	{'4', 0, 0, 0},       // 0x6B Kp4
	{'7', 0, 0, 0},       // 0x6C Kp7
	{0, 0, 0, 0},         // 0x6D
	{0, 0, 0, 0},         // 0x6E
	{0, 0, 0, 0},         // 0x6F
	{'0', 0, 0, 0},       // 0x70 Kp0
	{'.', 0, 0, 0},       // 0x71 Kp.
	{'2', 0, 0, 0},       // 0x72 Kp2
	{'5', 0, 0, 0},       // 0x73 Kp5
	{'6', 0, 0, 0},       // 0x74 Kp6
	{'8', 0, 0, 0},       // 0x75 Kp8
	{0x1B, 0x1B, 0, 0},   // 0x76 Escape
	{0, 0, 0, 0},         // 0x77 NumLock
	{0, 0, 0, 0},         // 0x78 F11
	{'+', 0, 0, 0},       // 0x79 Kp+
	{'3', 0, 0, 0},       // 0x7A Kp3
	{'-', 0, 0, 0},       // 0x7B Kp-
	{'*', 0, 0, 0},       // 0x7C Kp*
	{'9', 0, 0, 0},       // 0x7D Kp9
	{0, 0, 0, 0},         // 0x7E ScrollLock
	{0, 0, 0, 0},         // 0x7F
}

// Lookup returns the table entry for code in the given shift index column.
// Codes outside the 7-bit range and out-of-range columns yield 0.
func Lookup(code ScanCode, shiftIndex int) byte {
	if code >= 0x80 || shiftIndex < 0 || shiftIndex > 3 {
		return 0
	}
	return table[code][shiftIndex]
}

// ShiftIndex selects the table column for the given modifier bits.
func ShiftIndex(shift, control bool) int {
	i := 0
	if shift {
		i |= 1
	}
	if control {
		i |= 2
	}
	return i
}
