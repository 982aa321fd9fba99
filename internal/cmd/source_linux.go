//go:build linux

package cmd

import (
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

func openEvdev(path string, grab bool, logger *slog.Logger) (driver.RawKeySource, io.Closer, error) {
	s, err := source.OpenEvdev(path, grab, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, s, nil
}
