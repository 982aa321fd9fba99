package driver_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Alia5/ps2host/driver"
	ps2Testing "github.com/Alia5/ps2host/internal/testing"
	"github.com/Alia5/ps2host/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var banner = []byte{0x80 | 'K', 'B', driver.FirmwareVersion}

func runAll(t *testing.T, opts translate.Options, in []byte) []byte {
	t.Helper()
	src := ps2Testing.NewFakeSource(in...)
	sink := &ps2Testing.CaptureSink{}
	d := driver.New(src, sink, opts, driver.Config{Version: driver.FirmwareVersion}, nil, nil)

	err := d.Run(context.Background())
	require.ErrorIs(t, err, io.EOF)
	return sink.Bytes()
}

func TestRun(t *testing.T) {
	type testCase struct {
		name     string
		opts     translate.StaticOptions
		input    []byte
		expected []byte
	}

	cases := []testCase{
		{
			name:     "banner only",
			input:    nil,
			expected: nil,
		},
		{
			name:     "typing hi",
			input:    []byte{0x33, 0xF0, 0x33, 0x43, 0xF0, 0x43},
			expected: []byte("hi"),
		},
		{
			name:     "shifted letter",
			input:    []byte{0x12, 0x33, 0xF0, 0x33, 0xF0, 0x12, 0x43},
			expected: []byte("Hi"),
		},
		{
			name:     "caps lock twice restores casing",
			input:    []byte{0x58, 0xF0, 0x58, 0x1C, 0x58, 0xF0, 0x58, 0x1C},
			expected: []byte("Aa"),
		},
		{
			name:     "application keypad 5",
			opts:     translate.StaticOptions{Keypad: true},
			input:    []byte{0x73, 0xF0, 0x73},
			expected: []byte{0x1B, '?', 'u'},
		},
		{
			name:     "numeric keypad 5",
			input:    []byte{0x73, 0xF0, 0x73},
			expected: []byte{'5'},
		},
		{
			name:     "up arrow press and release",
			input:    []byte{0xE0, 0x75, 0xE0, 0xF0, 0x75},
			expected: []byte{0x1B, 'A'},
		},
		{
			name:     "pause produces nothing",
			input:    []byte{0xE1, 0x14, 0x77, 0xE1, 0xF0, 0x14, 0xF0, 0x77, 0x1C},
			expected: []byte{'a'},
		},
		{
			name:     "self test acknowledgement",
			input:    []byte{0xAA, 0x1C},
			expected: []byte{0xAA, 'a'},
		},
		{
			name:     "swapped control",
			opts:     translate.StaticOptions{Swap: true},
			input:    []byte{0x58, 0x1C, 0xF0, 0x1C, 0xF0, 0x58, 0x1C},
			expected: []byte{0x01, 'a'},
		},
		{
			name:     "print screen sends nothing",
			input:    []byte{0xE0, 0x12, 0xE0, 0x7C, 0xE0, 0xF0, 0x12, 0xE0, 0xF0, 0x7C},
			expected: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := runAll(t, tc.opts, tc.input)
			require.GreaterOrEqual(t, len(out), len(banner))
			assert.Equal(t, banner, out[:len(banner)], "banner must come first")
			assert.Equal(t, tc.expected, nilIfEmpty(out[len(banner):]))
		})
	}
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

func TestReinitKeepsModifiers(t *testing.T) {
	ctx := context.Background()
	src := ps2Testing.NewFakeSource(0x12)
	src.CloseWhenDrained = false
	sink := &ps2Testing.CaptureSink{}
	d := driver.New(src, sink, nil, driver.Config{Version: 7}, nil, nil)

	require.NoError(t, d.Start(ctx))
	b, err := d.WaitKey(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Process(ctx, b))
	assert.True(t, d.Modifiers().LeftShift)

	src.Fail(driver.StatusParity)
	src.Push(0x1C)
	b, err = d.WaitKey(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Process(ctx, b))

	assert.Equal(t, 1, src.Reinits())
	assert.Equal(t, translate.ModifierState{LeftShift: true}, d.Modifiers())
	assert.Equal(t, []byte{0x80 | 'K', 'B', 7, 'A'}, sink.Bytes())
}

func TestReinitDropsPartialSequence(t *testing.T) {
	ctx := context.Background()
	src := ps2Testing.NewFakeSource(0xE0)
	src.CloseWhenDrained = false
	sink := &ps2Testing.CaptureSink{}
	d := driver.New(src, sink, nil, driver.Config{}, nil, nil)

	b, err := d.WaitKey(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Process(ctx, b))

	src.Fail(driver.StatusFraming)
	src.Push(0x1C)
	b, err = d.WaitKey(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Process(ctx, b))
	assert.Equal(t, []byte{'a'}, sink.Bytes())
}

func TestWaitKeyHonoursContext(t *testing.T) {
	src := ps2Testing.NewFakeSource()
	src.CloseWhenDrained = false
	d := driver.New(src, &ps2Testing.CaptureSink{}, nil, driver.Config{PollInterval: time.Millisecond}, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := d.WaitKey(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSinkErrorStopsRun(t *testing.T) {
	boom := errors.New("host gone")
	src := ps2Testing.NewFakeSource(0x1C)
	sink := &ps2Testing.CaptureSink{Err: boom}
	d := driver.New(src, sink, nil, driver.Config{}, nil, nil)

	err := d.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestReinitRetriesUntilSourceReturns(t *testing.T) {
	ctx := context.Background()
	src := ps2Testing.NewFakeSource()
	src.CloseWhenDrained = false
	d := driver.New(src, &ps2Testing.CaptureSink{}, nil, driver.Config{PollInterval: time.Millisecond}, nil, nil)

	unplugged := errors.New("open /dev/ttyUSB0: no such device")
	src.Fail(driver.StatusFraming)
	src.FailReinit(unplugged, unplugged)
	src.Push(0x1C)

	b, err := d.WaitKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, byte(0x1C), b)
	assert.Equal(t, 3, src.Reinits())
}

func TestRunSurvivesFailedReinit(t *testing.T) {
	src := ps2Testing.NewFakeSource()
	sink := &ps2Testing.CaptureSink{}
	d := driver.New(src, sink, nil, driver.Config{Version: driver.FirmwareVersion, PollInterval: time.Millisecond}, nil, nil)

	src.Fail(driver.StatusFraming)
	src.FailReinit(errors.New("device went away"))
	src.Push(0x12, 0x1C, 0xF0, 0x1C)

	err := d.Run(context.Background())
	require.ErrorIs(t, err, driver.ErrSourceClosed)
	assert.Equal(t, append(append([]byte{}, banner...), 'A'), sink.Bytes())
	assert.True(t, d.Modifiers().LeftShift)
}

func TestReinitRetryHonoursContext(t *testing.T) {
	src := ps2Testing.NewFakeSource()
	src.CloseWhenDrained = false
	d := driver.New(src, &ps2Testing.CaptureSink{}, nil, driver.Config{PollInterval: time.Millisecond}, nil, nil)

	gone := errors.New("device went away")
	src.Fail(driver.StatusOverrun)
	src.FailReinit(gone, gone, gone, gone, gone, gone, gone, gone, gone, gone,
		gone, gone, gone, gone, gone, gone, gone, gone, gone, gone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := d.WaitKey(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
