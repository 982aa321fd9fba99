//go:build linux || darwin || freebsd || netbsd || openbsd

package source

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Alia5/ps2host/driver"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Serial reads scan codes from a terminal device, such as a USB serial bridge
// wired to a PS/2 receiver. The line speed is left as configured on the device.
type Serial struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	fd     int
	state  *term.State
	status driver.Status
}

// OpenSerial opens path in raw, non-blocking mode.
func OpenSerial(path string, logger *slog.Logger) (*Serial, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Serial{path: path, fd: -1, logger: logger}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Serial) open() error {
	fd, err := unix.Open(s.path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("set %s to raw mode: %w", s.path, err)
	}
	s.fd = fd
	s.state = state
	s.logger.Debug("serial source opened", "path", s.path)
	return nil
}

func (s *Serial) closeLocked() error {
	if s.fd < 0 {
		return nil
	}
	if s.state != nil {
		_ = term.Restore(s.fd, s.state)
	}
	err := unix.Close(s.fd)
	s.fd = -1
	s.state = nil
	return err
}

func (s *Serial) TryRead() (byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fd < 0 || s.status&driver.ErrorBits != 0 {
		return 0, false
	}
	var buf [1]byte
	n, err := unix.Read(s.fd, buf[:])
	switch {
	case err == nil && n == 1:
		return buf[0], true
	case err == nil && n == 0:
		// Hangup: the bridge went away.
		s.status |= driver.StatusTimeout
	case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR):
	case errors.Is(err, unix.EIO):
		s.status |= driver.StatusFraming
	default:
		s.logger.Debug("serial read failed", "path", s.path, "error", err)
		s.status |= driver.StatusOverrun
	}
	return 0, false
}

func (s *Serial) Status() driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Reinit closes and reopens the device. If the device cannot be reopened the
// framing bit stays set so the driver tries again.
func (s *Serial) Reinit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.closeLocked()
	s.status = 0
	if err := s.open(); err != nil {
		s.status |= driver.StatusFraming
		return err
	}
	return nil
}

// Close restores the terminal settings and releases the device.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}
