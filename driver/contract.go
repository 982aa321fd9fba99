package driver

import (
	"context"
	"errors"
)

// ErrSourceClosed is returned by Reinit when a source has ended for good,
// such as a drained capture file. Any other Reinit error is retried.
var ErrSourceClosed = errors.New("source closed")

// Status is the sticky error bitfield of a RawKeySource.
type Status uint8

// Receive error bits. Any bit in ErrorBits makes the driver reinitialize the source.
const (
	StatusParity  Status = 0x10
	StatusFraming Status = 0x20
	StatusOverrun Status = 0x40
	StatusTimeout Status = 0x80

	ErrorBits Status = 0xF0
)

// RawKeySource supplies raw scan code bytes from the keyboard.
type RawKeySource interface {
	// TryRead returns the next byte, or false if none has arrived yet.
	// It never blocks.
	TryRead() (byte, bool)
	// Status returns the sticky error bits.
	Status() Status
	// Reinit resets the receiver and clears the error bits. A failed Reinit
	// is retried unless it wraps ErrSourceClosed.
	Reinit() error
}

// HostSink delivers bytes to the host one at a time.
type HostSink interface {
	// SendByte blocks until the host has taken b.
	SendByte(ctx context.Context, b byte) error
}
