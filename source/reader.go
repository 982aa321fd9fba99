// Package source provides driver.RawKeySource implementations: byte streams,
// serial terminals and Linux input devices.
package source

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/Alia5/ps2host/driver"
)

// ErrClosed is returned by Reinit once a stream source has no more data.
var ErrClosed = driver.ErrSourceClosed

// Format selects how a Reader interprets its input.
type Format string

const (
	FormatBinary Format = "binary" // one scan code byte per input byte
	FormatHex    Format = "hex"    // whitespace separated hex pairs, '#' comments
)

const bufferSize = 256

// Reader adapts an io.Reader into a RawKeySource. A background goroutine
// decodes the stream into a buffered channel; TryRead never blocks.
type Reader struct {
	ch     chan byte
	done   chan struct{}
	mu     sync.Mutex
	status driver.Status
	err    error
}

// NewReader starts reading r in the given format.
func NewReader(r io.Reader, format Format) (*Reader, error) {
	s := &Reader{
		ch:   make(chan byte, bufferSize),
		done: make(chan struct{}),
	}
	switch format {
	case FormatBinary, "":
		go s.pumpBinary(r)
	case FormatHex:
		go s.pumpHex(r)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	return s, nil
}

func (s *Reader) pumpBinary(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			s.finish(err)
			return
		}
		s.ch <- b
	}
}

func (s *Reader) pumpHex(r io.Reader) {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, field := range strings.FieldsFunc(text, func(r rune) bool { return unicode.IsSpace(r) || r == ',' }) {
			field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
			b, err := hex.DecodeString(field)
			if err != nil || len(b) != 1 {
				s.finish(fmt.Errorf("line %d: bad scan code %q", line, field))
				return
			}
			s.ch <- b[0]
		}
	}
	if err := sc.Err(); err != nil {
		s.finish(err)
		return
	}
	s.finish(io.EOF)
}

// finish records why the stream ended. Buffered bytes remain readable.
func (s *Reader) finish(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)
}

func (s *Reader) TryRead() (byte, bool) {
	select {
	case b := <-s.ch:
		return b, true
	default:
	}
	select {
	case <-s.done:
		// The pump may have queued its last bytes just before closing.
		select {
		case b := <-s.ch:
			return b, true
		default:
		}
		s.mu.Lock()
		if errors.Is(s.err, io.EOF) {
			s.status |= driver.StatusTimeout
		} else {
			s.status |= driver.StatusFraming
		}
		s.mu.Unlock()
	default:
	}
	return 0, false
}

func (s *Reader) Status() driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Reinit clears the error bits. A stream cannot be restarted, so once it has
// ended Reinit reports ErrClosed together with the cause.
func (s *Reader) Reinit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = 0
	select {
	case <-s.done:
		if len(s.ch) > 0 {
			return nil
		}
		if errors.Is(s.err, io.EOF) {
			return fmt.Errorf("%w: %w", ErrClosed, io.EOF)
		}
		return fmt.Errorf("%w: %w", ErrClosed, s.err)
	default:
		return nil
	}
}
