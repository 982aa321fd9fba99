//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/Alia5/ps2host/driver"
)

func openSerial(string, *slog.Logger) (driver.RawKeySource, io.Closer, error) {
	return nil, nil, errors.New("serial sources are not supported on this platform")
}

func openEvdev(string, bool, *slog.Logger) (driver.RawKeySource, io.Closer, error) {
	return nil, nil, errors.New("evdev sources are only available on linux")
}
