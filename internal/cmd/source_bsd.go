//go:build darwin || freebsd || netbsd || openbsd

package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/Alia5/ps2host/driver"
	"github.com/Alia5/ps2host/source"
)

func openSerial(path string, logger *slog.Logger) (driver.RawKeySource, io.Closer, error) {
	s, err := source.OpenSerial(path, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, s, nil
}

func openEvdev(string, bool, *slog.Logger) (driver.RawKeySource, io.Closer, error) {
	return nil, nil, errors.New("evdev sources are only available on linux")
}
