package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
)

// TCPConfig controls the network handshake sink.
type TCPConfig struct {
	Addr        string        `help:"Host address for the tcp sink" default:"localhost:3250" env:"PS2HOST_HOST_ADDR"`
	DialTimeout time.Duration `help:"Dial timeout for the tcp sink" default:"5s" env:"PS2HOST_HOST_DIAL_TIMEOUT"`
	AckTimeout  time.Duration `help:"How long to wait for the host to take a byte, 0 waits forever" default:"0s" env:"PS2HOST_HOST_ACK_TIMEOUT"`
}

// ErrNoAck is returned when the host does not acknowledge within AckTimeout.
var ErrNoAck = errors.New("host did not acknowledge")

// TCP is a handshaking sink: every byte is written and then the sink waits
// for the host to echo a single acknowledgement byte before returning. The
// connection is dialed lazily and redialed after a failure.
type TCP struct {
	cfg    TCPConfig
	logger *slog.Logger

	mu   sync.Mutex
	conn net.Conn
}

// NewTCP returns a sink for cfg.Addr. No connection is made until the first byte.
func NewTCP(cfg TCPConfig, logger *slog.Logger) *TCP {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TCP{cfg: cfg, logger: logger}
}

func (s *TCP) dial(ctx context.Context) (net.Conn, error) {
	if s.conn != nil {
		return s.conn, nil
	}
	d := net.Dialer{Timeout: s.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("dial host %s: %w", s.cfg.Addr, err)
	}
	s.logger.Info("Connected to host", "addr", s.cfg.Addr)
	s.conn = conn
	return conn, nil
}

// SendByte writes b and blocks until the host acknowledges it or ctx ends.
func (s *TCP) SendByte(ctx context.Context, b byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	var deadline time.Time
	if s.cfg.AckTimeout > 0 {
		deadline = time.Now().Add(s.cfg.AckTimeout)
	}
	_ = conn.SetDeadline(deadline)

	if _, err := conn.Write([]byte{b}); err != nil {
		return s.fail(ctx, fmt.Errorf("write to host: %w", err))
	}
	var ack [1]byte
	if _, err := io.ReadFull(conn, ack[:]); err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() && ctx.Err() == nil {
			return s.fail(ctx, ErrNoAck)
		}
		return s.fail(ctx, fmt.Errorf("wait for host ack: %w", err))
	}
	return nil
}

// fail drops the connection so the next byte redials.
func (s *TCP) fail(ctx context.Context, err error) error {
	_ = s.conn.Close()
	s.conn = nil
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// Close closes the connection, if any.
func (s *TCP) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
