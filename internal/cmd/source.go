package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/ps2host/driver"
	"github.com/Alia5/ps2host/source"
)

// SourceConfig selects where raw scan codes come from.
type SourceConfig struct {
	Kind   string `help:"Keyboard source: stdin, file, serial or evdev" enum:"stdin,file,serial,evdev" default:"stdin" env:"PS2HOST_SOURCE_KIND"`
	Path   string `help:"Path of the file, serial device or input device" env:"PS2HOST_SOURCE_PATH"`
	Format string `help:"Encoding of stdin and file sources" enum:"binary,hex" default:"binary" env:"PS2HOST_SOURCE_FORMAT"`
	Grab   bool   `help:"Grab the input device so other programs stop seeing its keys" env:"PS2HOST_SOURCE_GRAB"`
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the configured source and a closer releasing it.
func (c SourceConfig) Open(logger *slog.Logger) (driver.RawKeySource, io.Closer, error) {
	switch c.Kind {
	case "stdin", "":
		r, err := source.NewReader(os.Stdin, source.Format(c.Format))
		if err != nil {
			return nil, nil, err
		}
		return r, nopCloser{}, nil
	case "file":
		if c.Path == "" {
			return nil, nil, fmt.Errorf("file source needs --source.path")
		}
		f, err := os.Open(c.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open scan code file: %w", err)
		}
		r, err := source.NewReader(f, source.Format(c.Format))
		if err != nil {
			_ = f.Close()
			return nil, nil, err
		}
		return r, f, nil
	case "serial":
		if c.Path == "" {
			return nil, nil, fmt.Errorf("serial source needs --source.path")
		}
		return openSerial(c.Path, logger)
	case "evdev":
		if c.Path == "" {
			return nil, nil, fmt.Errorf("evdev source needs --source.path")
		}
		return openEvdev(c.Path, c.Grab, logger)
	default:
		return nil, nil, fmt.Errorf("unknown source %q", c.Kind)
	}
}
