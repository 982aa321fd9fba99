package scancode

import (
	"fmt"
	"log/slog"
)

type decodeState uint8

const (
	stateIdle decodeState = iota
	stateRelease
	stateExtended
	stateExtendedRelease
	statePause
)

// Result is the outcome of feeding one byte to a Decoder.
type Result struct {
	// Event is valid when Ready is set.
	Event KeyEvent
	Ready bool
	// Echo holds bytes to be sent straight to the host, ahead of any
	// translation (the self-test acknowledgement).
	Echo []byte
}

// Decoder turns raw scan code set 2 bytes into KeyEvents.
// It absorbs prefixes, special codes and the Pause/Break sequence.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	state    decodeState
	pauseIdx int
	logger   *slog.Logger
}

// NewDecoder returns a Decoder waiting for the first byte of a keystroke.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Decoder{logger: logger}
}

// Reset abandons any partial sequence.
func (d *Decoder) Reset() {
	d.state = stateIdle
	d.pauseIdx = 0
}

// Pending reports whether the decoder is in the middle of a multi-byte sequence.
func (d *Decoder) Pending() bool {
	return d.state != stateIdle
}

// Feed consumes one raw byte.
func (d *Decoder) Feed(b byte) Result {
	switch d.state {
	case stateRelease:
		d.state = stateIdle
		return Result{Event: KeyEvent{Code: ScanCode(b), Release: true}, Ready: true}

	case stateExtended:
		if b == PrefixRelease {
			d.state = stateExtendedRelease
			return Result{}
		}
		d.state = stateIdle
		return Result{Event: KeyEvent{Code: ScanCode(b), Extended: true}, Ready: true}

	case stateExtendedRelease:
		d.state = stateIdle
		return Result{Event: KeyEvent{Code: ScanCode(b), Extended: true, Release: true}, Ready: true}

	case statePause:
		if b != PauseSequence[d.pauseIdx] {
			d.logger.Debug("KBD: pause sequence abandoned", "at", d.pauseIdx, "got", fmt.Sprintf("0x%02x", b))
			d.Reset()
			// The mismatching byte starts a new keystroke.
			return d.Feed(b)
		}
		d.pauseIdx++
		if d.pauseIdx == len(PauseSequence) {
			d.Reset()
			d.logger.Debug("KBD: PAUSE/BREAK pressed")
		}
		return Result{}
	}

	if r, ok := d.special(b); ok {
		return r
	}

	switch b {
	case PrefixExtended:
		d.state = stateExtended
		return Result{}
	case PrefixPause:
		d.state = statePause
		d.pauseIdx = 0
		return Result{}
	case PrefixRelease:
		d.state = stateRelease
		return Result{}
	}
	return Result{Event: KeyEvent{Code: ScanCode(b)}, Ready: true}
}

// special handles the keyboard's own status codes. These never carry a
// release or extended prefix.
func (d *Decoder) special(b byte) (Result, bool) {
	switch b {
	case SpecialAck:
		d.logger.Debug("KBD: ACKNOWLEDGE")
	case SpecialSelfTestPass:
		d.logger.Debug("KBD: SELF TEST PASSED")
		return Result{Echo: []byte{SpecialSelfTestPass}}, true
	case SpecialEcho:
		d.logger.Debug("KBD: ECHO")
	case SpecialResend:
		d.logger.Debug("KBD: RESEND")
	case SpecialOverrun, SpecialError:
		d.logger.Debug("KBD: ERROR/OVERFLOW", "code", fmt.Sprintf("0x%02x", b))
	default:
		return Result{}, false
	}
	return Result{}, true
}
