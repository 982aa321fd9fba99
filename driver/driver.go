// Package driver runs the keyboard to host translation loop.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/Alia5/ps2host/internal/log"
	"github.com/Alia5/ps2host/scancode"
	"github.com/Alia5/ps2host/translate"
)

// FirmwareVersion is sent as the third byte of the startup banner.
const FirmwareVersion = 1

// Firmware identifies this translator in the startup log.
const Firmware = "PS/2 Keyboard Interface"

// Config holds driver settings.
type Config struct {
	// Version is reported to the host at startup.
	Version uint8
	// PollInterval is the pause between empty reads. Zero yields the
	// processor instead of sleeping.
	PollInterval time.Duration
}

// Driver owns the modifier state and wires a source, decoder, translator and sink.
// A Driver must only be used from one goroutine.
type Driver struct {
	src       RawKeySource
	sink      HostSink
	dec       *scancode.Decoder
	tr        *translate.Translator
	mods      translate.ModifierState
	cfg       Config
	logger    *slog.Logger
	rawLogger log.RawLogger
}

// New returns a Driver. opts is read live on every event.
func New(src RawKeySource, sink HostSink, opts translate.Options, cfg Config, logger *slog.Logger, rawLogger log.RawLogger) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	return &Driver{
		src:       src,
		sink:      sink,
		dec:       scancode.NewDecoder(logger),
		tr:        translate.New(opts, logger),
		cfg:       cfg,
		logger:    logger,
		rawLogger: rawLogger,
	}
}

// Modifiers returns a copy of the current modifier state.
func (d *Driver) Modifiers() translate.ModifierState {
	return d.mods
}

// Start sends the identification banner so the host can detect a restart.
func (d *Driver) Start(ctx context.Context) error {
	d.logger.Info("Starting "+Firmware, "version", d.cfg.Version)
	return d.send(ctx, []byte{0x80 | 'K', 'B', d.cfg.Version})
}

// Run sends the banner and translates keys until ctx is cancelled, the sink
// fails, or the source reports ErrSourceClosed.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	for {
		b, err := d.WaitKey(ctx)
		if err != nil {
			return err
		}
		if err := d.Process(ctx, b); err != nil {
			return err
		}
	}
}

// WaitKey polls the source until a byte arrives. When the source reports an
// error it is reinitialized in place, as often as it takes, and polling
// continues.
func (d *Driver) WaitKey(ctx context.Context) (byte, error) {
	for {
		if b, ok := d.src.TryRead(); ok {
			return b, nil
		}
		if st := d.src.Status(); st&ErrorBits != 0 {
			d.logger.Warn("KBD: keyboard re-initialized", "status", fmt.Sprintf("0x%02x", uint8(st)))
			if err := d.reinit(ctx); err != nil {
				return 0, err
			}
			continue
		}
		if err := d.idle(ctx); err != nil {
			return 0, err
		}
	}
}

// reinit resets the source until it comes back. Only a closed source or ctx
// ends the retries; modifier state is left alone either way.
func (d *Driver) reinit(ctx context.Context) error {
	for {
		err := d.src.Reinit()
		if err == nil {
			d.dec.Reset()
			return nil
		}
		if errors.Is(err, ErrSourceClosed) {
			return fmt.Errorf("reinitialize keyboard: %w", err)
		}
		d.logger.Warn("KBD: keyboard re-initialize failed, retrying", "error", err)
		if err := d.idle(ctx); err != nil {
			return err
		}
	}
}

// idle waits one poll interval.
func (d *Driver) idle(ctx context.Context) error {
	if d.cfg.PollInterval <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.cfg.PollInterval):
		return nil
	}
}

// Process feeds one raw byte through the decoder and translator and sends
// whatever it produces.
func (d *Driver) Process(ctx context.Context, b byte) error {
	d.rawLogger.Log(true, []byte{b})

	r := d.dec.Feed(b)
	if len(r.Echo) > 0 {
		if err := d.send(ctx, r.Echo); err != nil {
			return err
		}
	}
	if !r.Ready {
		return nil
	}

	out, stage := d.tr.Translate(&d.mods, r.Event)
	d.logger.Log(ctx, log.LevelTrace, "key event", "event", r.Event.String(), "stage", stage.String(), "out", len(out))
	return d.send(ctx, out)
}

// send writes bytes to the sink one at a time, in order.
func (d *Driver) send(ctx context.Context, out []byte) error {
	for _, c := range out {
		if err := d.sink.SendByte(ctx, c); err != nil {
			return fmt.Errorf("send 0x%02x to host: %w", c, err)
		}
		d.rawLogger.Log(false, []byte{c})
	}
	return nil
}
