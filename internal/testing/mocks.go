package testing

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Alia5/ps2host/driver"
)

// FakeSource is a scripted driver.RawKeySource.
type FakeSource struct {
	mu      sync.Mutex
	queue   []byte
	status  driver.Status
	reinits int
	// reinitErrs are returned, in order, by the next calls to Reinit.
	reinitErrs []error

	// CloseWhenDrained makes an empty queue report an error whose Reinit
	// fails with driver.ErrSourceClosed wrapping io.EOF, ending the driver loop.
	CloseWhenDrained bool
}

// NewFakeSource returns a source that will deliver in, in order.
func NewFakeSource(in ...byte) *FakeSource {
	return &FakeSource{queue: append([]byte(nil), in...), CloseWhenDrained: true}
}

// Push queues more bytes.
func (s *FakeSource) Push(in ...byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, in...)
}

// Fail sets sticky error bits. Reads return nothing until Reinit.
func (s *FakeSource) Fail(st driver.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status |= st
}

// FailReinit makes the next len(errs) calls to Reinit fail with errs, in
// order. A failed Reinit clears the error bits like a real receiver that
// was reset but could not come back.
func (s *FakeSource) FailReinit(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reinitErrs = append(s.reinitErrs, errs...)
}

// Reinits returns how often Reinit was called.
func (s *FakeSource) Reinits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reinits
}

func (s *FakeSource) TryRead() (byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status&driver.ErrorBits != 0 || len(s.queue) == 0 {
		return 0, false
	}
	b := s.queue[0]
	s.queue = s.queue[1:]
	return b, true
}

func (s *FakeSource) Status() driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CloseWhenDrained && len(s.queue) == 0 {
		return s.status | driver.StatusTimeout
	}
	return s.status
}

func (s *FakeSource) Reinit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reinits++
	s.status = 0
	if len(s.reinitErrs) > 0 {
		err := s.reinitErrs[0]
		s.reinitErrs = s.reinitErrs[1:]
		return err
	}
	if s.CloseWhenDrained && len(s.queue) == 0 {
		return fmt.Errorf("%w: %w", driver.ErrSourceClosed, io.EOF)
	}
	return nil
}

// CaptureSink is a driver.HostSink recording every byte it is given.
type CaptureSink struct {
	mu  sync.Mutex
	out []byte

	// Err is returned from SendByte when set.
	Err error
}

func (s *CaptureSink) SendByte(_ context.Context, b byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.out = append(s.out, b)
	return nil
}

// Bytes returns a copy of everything sent so far.
func (s *CaptureSink) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.out...)
}

// Reset forgets the captured bytes.
func (s *CaptureSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = nil
}
