// Package host provides driver.HostSink implementations.
package host

import (
	"context"
	"io"
)

// Writer sends each byte straight to an io.Writer, such as stdout.
type Writer struct {
	w io.Writer
}

// NewWriter returns a sink writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) SendByte(ctx context.Context, b byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.w.Write([]byte{b})
	return err
}
