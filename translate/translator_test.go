package translate_test

import (
	"testing"

	"github.com/Alia5/ps2host/scancode"
	"github.com/Alia5/ps2host/translate"
	"github.com/stretchr/testify/assert"
)

func ext(code scancode.ScanCode, release bool) scancode.KeyEvent {
	return scancode.KeyEvent{Code: code, Extended: true, Release: release}
}

func TestTranslate(t *testing.T) {
	type testCase struct {
		name     string
		opts     translate.StaticOptions
		mods     translate.ModifierState
		event    scancode.KeyEvent
		expected []byte
		stage    translate.Stage
	}

	cases := []testCase{
		{name: "plain letter", event: scancode.Press(scancode.CodeA), expected: []byte{'a'}, stage: translate.StageASCII},
		{name: "letter release", event: scancode.ReleaseOf(scancode.CodeA), expected: nil, stage: translate.StageASCII},
		{name: "left shift letter", mods: translate.ModifierState{LeftShift: true}, event: scancode.Press(scancode.CodeA), expected: []byte{'A'}, stage: translate.StageASCII},
		{name: "right shift digit", mods: translate.ModifierState{RightShift: true}, event: scancode.Press(scancode.Code1), expected: []byte{'!'}, stage: translate.StageASCII},
		{name: "control letter", mods: translate.ModifierState{Control: true}, event: scancode.Press(scancode.CodeA), expected: []byte{0x01}, stage: translate.StageASCII},
		{name: "control shift 2 masks to NUL", mods: translate.ModifierState{Control: true, LeftShift: true}, event: scancode.Press(scancode.Code2), expected: []byte{0x00}, stage: translate.StageASCII},
		{name: "control shift 6", mods: translate.ModifierState{Control: true, RightShift: true}, event: scancode.Press(scancode.Code6), expected: []byte{0x1E}, stage: translate.StageASCII},
		{name: "control digit has no mapping", mods: translate.ModifierState{Control: true}, event: scancode.Press(scancode.Code1), expected: nil, stage: translate.StageUnknown},
		{name: "caps lock letter", mods: translate.ModifierState{CapsLock: true}, event: scancode.Press(scancode.CodeQ), expected: []byte{'Q'}, stage: translate.StageASCII},
		{name: "caps lock leaves digits", mods: translate.ModifierState{CapsLock: true}, event: scancode.Press(scancode.Code1), expected: []byte{'1'}, stage: translate.StageASCII},
		{name: "caps lock with shift stays upper", mods: translate.ModifierState{CapsLock: true, LeftShift: true}, event: scancode.Press(scancode.CodeZ), expected: []byte{'Z'}, stage: translate.StageASCII},
		{name: "num lock", event: scancode.Press(scancode.CodeNumLock), stage: translate.StageLock},
		{name: "num lock application keypad", opts: translate.StaticOptions{Keypad: true}, event: scancode.Press(scancode.CodeNumLock), stage: translate.StageLock},
		{name: "scroll lock release", event: scancode.ReleaseOf(scancode.CodeScrollLock), stage: translate.StageLock},
		{name: "function key", event: scancode.Press(scancode.CodeF1), stage: translate.StageFunction},
		{name: "F7 above table range", event: scancode.Press(scancode.CodeF7), stage: translate.StageFunction},
		{name: "alt press", event: scancode.Press(scancode.CodeAlt), stage: translate.StageModifier},
		{name: "alt release", event: scancode.ReleaseOf(scancode.CodeAlt), stage: translate.StageModifier},
		{name: "keypad 5 application", opts: translate.StaticOptions{Keypad: true}, event: scancode.Press(scancode.CodeKp5), expected: []byte{0x1B, '?', 'u'}, stage: translate.StageKeypad},
		{name: "keypad 5 application release", opts: translate.StaticOptions{Keypad: true}, event: scancode.ReleaseOf(scancode.CodeKp5), expected: nil, stage: translate.StageKeypad},
		{name: "keypad 5 numeric", event: scancode.Press(scancode.CodeKp5), expected: []byte{'5'}, stage: translate.StageASCII},
		{name: "keypad 0 application", opts: translate.StaticOptions{Keypad: true}, event: scancode.Press(scancode.CodeKp0), expected: []byte{0x1B, '?', 'p'}, stage: translate.StageKeypad},
		{name: "keypad 9 application", opts: translate.StaticOptions{Keypad: true}, event: scancode.Press(scancode.CodeKp9), expected: []byte{0x1B, '?', 'y'}, stage: translate.StageKeypad},
		{name: "keypad dot application", opts: translate.StaticOptions{Keypad: true}, event: scancode.Press(scancode.CodeKpDot), expected: []byte{0x1B, '?', 'z'}, stage: translate.StageKeypad},
		{name: "keypad asterisk application", opts: translate.StaticOptions{Keypad: true}, event: scancode.Press(scancode.CodeKpAsterisk), expected: []byte{0x1B, 'Q'}, stage: translate.StageKeypad},
		{name: "keypad minus application", opts: translate.StaticOptions{Keypad: true}, event: scancode.Press(scancode.CodeKpMinus), expected: []byte{0x1B, 'R'}, stage: translate.StageKeypad},
		{name: "keypad plus application", opts: translate.StaticOptions{Keypad: true}, event: scancode.Press(scancode.CodeKpPlus), expected: nil, stage: translate.StageKeypad},
		{name: "keypad plus numeric", event: scancode.Press(scancode.CodeKpPlus), expected: []byte{'+'}, stage: translate.StageASCII},
		{name: "keypad digit ignores shift", mods: translate.ModifierState{LeftShift: true}, event: scancode.Press(scancode.CodeKp5), expected: nil, stage: translate.StageUnknown},
		{name: "up arrow", event: ext(scancode.CodeUp, false), expected: []byte{0x1B, 'A'}, stage: translate.StageExtended},
		{name: "up arrow application", opts: translate.StaticOptions{Keypad: true}, event: ext(scancode.CodeUp, false), expected: []byte{0x1B, 'A'}, stage: translate.StageExtended},
		{name: "up arrow release", event: ext(scancode.CodeUp, true), expected: nil, stage: translate.StageExtended},
		{name: "down arrow", event: ext(scancode.CodeDown, false), expected: []byte{0x1B, 'B'}, stage: translate.StageExtended},
		{name: "right arrow", event: ext(scancode.CodeRight, false), expected: []byte{0x1B, 'C'}, stage: translate.StageExtended},
		{name: "left arrow", event: ext(scancode.CodeLeft, false), expected: []byte{0x1B, 'D'}, stage: translate.StageExtended},
		{name: "home", event: ext(scancode.CodeHome, false), expected: nil, stage: translate.StageExtended},
		{name: "keypad enter numeric", event: ext(scancode.CodeKpEnter, false), expected: []byte{'\r'}, stage: translate.StageExtended},
		{name: "keypad enter application", opts: translate.StaticOptions{Keypad: true}, event: ext(scancode.CodeKpEnter, false), expected: []byte{0x1B, '?', 'M'}, stage: translate.StageExtended},
		{name: "keypad enter release", opts: translate.StaticOptions{Keypad: true}, event: ext(scancode.CodeKpEnter, true), expected: nil, stage: translate.StageExtended},
		{name: "keypad slash numeric", event: ext(scancode.CodeKpSlash, false), expected: []byte{'/'}, stage: translate.StageExtended},
		{name: "keypad slash application", opts: translate.StaticOptions{Keypad: true}, event: ext(scancode.CodeKpSlash, false), expected: []byte{0x1B, 'P'}, stage: translate.StageExtended},
		{name: "left windows", event: ext(scancode.CodeLeftWindows, false), stage: translate.StageExtended},
		{name: "menu non-extended is unknown", event: scancode.Press(scancode.CodeMenu), stage: translate.StageUnknown},
		{name: "print screen first half", event: ext(scancode.CodePrintScreenFirst, false), stage: translate.StageExtended},
		{name: "print screen second half release", event: ext(scancode.CodePrintScreenSecond, true), stage: translate.StageExtended},
		{name: "unknown extended", event: ext(0x01, false), stage: translate.StageUnknown},
		{name: "unknown scan code", event: scancode.Press(0x02), stage: translate.StageUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := translate.New(tc.opts, nil)
			mods := tc.mods
			out, stage := tr.Translate(&mods, tc.event)
			assert.Equal(t, tc.expected, out)
			assert.Equal(t, tc.stage, stage, "stage %s", stage)
		})
	}
}

func TestEveryTableEntryTranslates(t *testing.T) {
	tr := translate.New(translate.StaticOptions{}, nil)
	for code := scancode.ScanCode(0); code < 0x80; code++ {
		for idx := 0; idx < 4; idx++ {
			want := scancode.Lookup(code, idx)
			if want == 0 {
				continue
			}
			mods := translate.ModifierState{LeftShift: idx&1 != 0, Control: idx&2 != 0}
			before := mods
			out, stage := tr.Translate(&mods, scancode.Press(code))
			assert.Equal(t, []byte{want & 0x7F}, out, "code %02X column %d", uint8(code), idx)
			assert.Equal(t, translate.StageASCII, stage, "code %02X column %d", uint8(code), idx)

			out, stage = tr.Translate(&mods, scancode.ReleaseOf(code))
			assert.Empty(t, out, "code %02X column %d release", uint8(code), idx)
			assert.Equal(t, translate.StageASCII, stage, "code %02X column %d release", uint8(code), idx)
			assert.Equal(t, before, mods)
		}
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, []byte{0x1B, '?', 'M'}, translate.Escape("?M"))
	assert.Equal(t, []byte{0x1B}, translate.Escape(""))
}
