package host_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/Alia5/ps2host/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	s := host.NewWriter(&buf)
	for _, b := range []byte{0x1B, '?', 'u'} {
		require.NoError(t, s.SendByte(context.Background(), b))
	}
	assert.Equal(t, []byte{0x1B, '?', 'u'}, buf.Bytes())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendByte(ctx, 'x'), context.Canceled)
}

// fakeHost accepts one connection and acknowledges every byte when ack is set.
func fakeHost(t *testing.T, ack bool) (addr string, got <-chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	ch := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var received []byte
		var b [1]byte
		for {
			if _, err := io.ReadFull(conn, b[:]); err != nil {
				ch <- received
				return
			}
			received = append(received, b[0])
			if ack {
				if _, err := conn.Write([]byte{0x06}); err != nil {
					ch <- received
					return
				}
			}
		}
	}()
	return ln.Addr().String(), ch
}

func TestTCPHandshake(t *testing.T) {
	addr, got := fakeHost(t, true)
	s := host.NewTCP(host.TCPConfig{Addr: addr, DialTimeout: time.Second, AckTimeout: time.Second}, nil)

	for _, b := range []byte{0x80 | 'K', 'B', 1, 'a'} {
		require.NoError(t, s.SendByte(context.Background(), b))
	}
	require.NoError(t, s.Close())

	select {
	case received := <-got:
		assert.Equal(t, []byte{0x80 | 'K', 'B', 1, 'a'}, received)
	case <-time.After(2 * time.Second):
		t.Fatal("host never saw the connection close")
	}
}

func TestTCPNoAck(t *testing.T) {
	addr, _ := fakeHost(t, false)
	s := host.NewTCP(host.TCPConfig{Addr: addr, DialTimeout: time.Second, AckTimeout: 50 * time.Millisecond}, nil)
	defer s.Close()

	err := s.SendByte(context.Background(), 'a')
	assert.ErrorIs(t, err, host.ErrNoAck)
}

func TestTCPCancelWhileWaiting(t *testing.T) {
	addr, _ := fakeHost(t, false)
	s := host.NewTCP(host.TCPConfig{Addr: addr, DialTimeout: time.Second}, nil)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := s.SendByte(ctx, 'a')
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTCPDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s := host.NewTCP(host.TCPConfig{Addr: addr, DialTimeout: time.Second}, nil)
	assert.Error(t, s.SendByte(context.Background(), 'a'))
}
