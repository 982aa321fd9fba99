package cmd

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/ps2host/driver"
	"github.com/Alia5/ps2host/host"
	"github.com/Alia5/ps2host/internal/log"
	"github.com/Alia5/ps2host/source"
	"github.com/Alia5/ps2host/translate"
)

// Replay feeds a captured scan code file through the translator.
type Replay struct {
	Input             string `arg:"" name:"input" help:"Scan code capture, '-' for stdin"`
	Format            string `help:"Encoding of the capture" enum:"binary,hex" default:"hex" env:"PS2HOST_REPLAY_FORMAT"`
	ApplicationKeypad bool   `help:"Send VT52 application keypad escapes" env:"PS2HOST_OPTIONS_APPLICATION_KEYPAD"`
	SwapCapsControl   bool   `help:"Swap Caps Lock and left Control" env:"PS2HOST_OPTIONS_SWAP_CAPS_CONTROL"`
	Annotate          bool   `help:"Print each scan code byte next to the host bytes it produced"`
	NoBanner          bool   `help:"Do not emit the startup banner"`
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := io.Reader(os.Stdin)
	if r.Input != "-" {
		f, err := os.Open(r.Input)
		if err != nil {
			return fmt.Errorf("open capture: %w", err)
		}
		defer f.Close()
		in = f
	}
	return r.Replay(ctx, in, os.Stdout, logger, rawLogger)
}

// Replay translates everything in in and writes the host bytes to out.
func (r *Replay) Replay(ctx context.Context, in io.Reader, out io.Writer, logger *slog.Logger, rawLogger log.RawLogger) error {
	src, err := source.NewReader(in, source.Format(r.Format))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	sink := host.NewWriter(&buf)
	opts := translate.StaticOptions{Keypad: r.ApplicationKeypad, Swap: r.SwapCapsControl}
	d := driver.New(src, sink, opts, driver.Config{Version: driver.FirmwareVersion}, logger, rawLogger)

	flush := func(scan []byte) error {
		if !r.Annotate {
			_, err := out.Write(buf.Bytes())
			buf.Reset()
			return err
		}
		_, err := fmt.Fprintf(out, "%-12s -> %s\n", hexBytes(scan), hexBytes(buf.Bytes()))
		buf.Reset()
		return err
	}

	if !r.NoBanner {
		if err := d.Start(ctx); err != nil {
			return err
		}
		if err := flush(nil); err != nil {
			return err
		}
	}

	for {
		b, err := d.WaitKey(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := d.Process(ctx, b); err != nil {
			return err
		}
		if err := flush([]byte{b}); err != nil {
			return err
		}
	}
}

func hexBytes(b []byte) string {
	if len(b) == 0 {
		return "-"
	}
	var sb bytes.Buffer
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(hex.EncodeToString([]byte{c}))
	}
	return sb.String()
}
