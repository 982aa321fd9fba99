package log

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in   string
		want slog.Level
	}
	tests := []testCase{
		{in: "trace", want: LevelTrace},
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.in))
		})
	}
}

func TestRawLoggerLine(t *testing.T) {
	type testCase struct {
		name string
		in   bool
		data []byte
		want string
	}
	tests := []testCase{
		{name: "keyboard bytes", in: true, data: []byte{0xE0, 0xF0, 0x75}, want: `KBD->TR  e0 f0 75 \|\.\.u\|`},
		{name: "host escape", in: false, data: []byte{0x1B, 'A'}, want: `TR->HOST 1b 41 \|\.A\|`},
		{name: "banner", in: false, data: []byte{0xCB, 'B', 0x01}, want: `TR->HOST cb 42 01 \|\.B\.\|`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewRaw(&buf).Log(tc.in, tc.data)
			assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\.\d{3} `+tc.want+"\n$"), buf.String())
		})
	}
}

func TestRawLoggerSilent(t *testing.T) {
	var buf bytes.Buffer
	NewRaw(&buf).Log(true, nil)
	assert.Empty(t, buf.String())

	assert.NotPanics(t, func() { NewRaw(nil).Log(true, []byte{0x1C}) })
}

func TestLevelFilterAndMulti(t *testing.T) {
	var low, high bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelTrace, ReplaceAttr: replaceLevel}
	h := MultiHandler{hs: []slog.Handler{
		LevelFilter{pass: func(l slog.Level) bool { return l < slog.LevelError }, h: slog.NewTextHandler(&low, opts)},
		LevelFilter{pass: func(l slog.Level) bool { return l >= slog.LevelError }, h: slog.NewTextHandler(&high, opts)},
	}}
	logger := slog.New(h)

	logger.Log(context.Background(), LevelTrace, "key")
	logger.Error("broken")

	assert.Contains(t, low.String(), "level=TRACE")
	assert.Contains(t, low.String(), "msg=key")
	assert.NotContains(t, low.String(), "broken")
	assert.Contains(t, high.String(), "msg=broken")
	assert.NotContains(t, high.String(), "msg=key")
}
