package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/ps2host/driver"
	"github.com/Alia5/ps2host/host"
	"github.com/Alia5/ps2host/internal/log"
	"github.com/Alia5/ps2host/source"
)

type Run struct {
	Source       SourceConfig   `embed:"" prefix:"source."`
	Sink         string         `help:"Where host bytes go: stdout or tcp" enum:"stdout,tcp" default:"stdout" env:"PS2HOST_SINK"`
	Host         host.TCPConfig `embed:"" prefix:"host."`
	Options      OptionsConfig  `embed:"" prefix:"options."`
	PollInterval time.Duration  `help:"Pause between empty keyboard polls, 0 spins" default:"1ms" env:"PS2HOST_POLL_INTERVAL"`
	Version      uint8          `help:"Version byte reported in the startup banner" default:"1" env:"PS2HOST_VERSION"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Translate(ctx, os.Stdout, logger, rawLogger)
}

// Translate opens the source and sink and runs the driver until ctx ends or
// the source is exhausted.
func (r *Run) Translate(ctx context.Context, stdout io.Writer, logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src, closeSrc, err := r.Source.Open(logger)
	if err != nil {
		return err
	}
	defer closeSrc.Close()

	var sink driver.HostSink
	switch r.Sink {
	case "tcp":
		t := host.NewTCP(r.Host, logger)
		defer t.Close()
		sink = t
		logger.Info("Sending host bytes over tcp", "addr", r.Host.Addr)
	default:
		sink = host.NewWriter(stdout)
	}

	opts, err := r.Options.Resolve(ctx, logger)
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}

	d := driver.New(src, sink, opts, driver.Config{Version: r.Version, PollInterval: r.PollInterval}, logger, rawLogger)
	err = d.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Shutting down")
		return nil
	case errors.Is(err, source.ErrClosed) && errors.Is(err, io.EOF):
		logger.Info("Keyboard source ended", "reason", err)
		return nil
	default:
		return err
	}
}
