package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Alia5/ps2host/options"
	"github.com/Alia5/ps2host/translate"
)

// OptionsConfig holds the two translator switches. With File set they are
// read from that TOML file and follow edits to it; the flags only seed a
// file that does not exist yet.
type OptionsConfig struct {
	File              string `help:"TOML file holding the options, watched for changes" env:"PS2HOST_OPTIONS_FILE"`
	ApplicationKeypad bool   `help:"Send VT52 application keypad escapes" env:"PS2HOST_OPTIONS_APPLICATION_KEYPAD"`
	SwapCapsControl   bool   `help:"Swap Caps Lock and left Control" env:"PS2HOST_OPTIONS_SWAP_CAPS_CONTROL"`
}

// Resolve returns the options to translate with. For a file it also starts
// a watcher bound to ctx.
func (c OptionsConfig) Resolve(ctx context.Context, logger *slog.Logger) (translate.Options, error) {
	if c.File == "" {
		return translate.StaticOptions{Keypad: c.ApplicationKeypad, Swap: c.SwapCapsControl}, nil
	}

	_, statErr := os.Stat(c.File)
	f, err := options.Load(c.File, logger)
	if err != nil {
		return nil, err
	}
	if errors.Is(statErr, fs.ErrNotExist) {
		f.Set(c.ApplicationKeypad, c.SwapCapsControl)
		if err := f.Save(); err != nil {
			return nil, err
		}
		logger.Info("Created options file", "path", c.File)
	}

	logger.Info("Watching options file", "path", f.Path(),
		"applicationKeypad", f.ApplicationKeypad(),
		"swapCapsAndControl", f.SwapCapsAndControl())
	go func() {
		if err := f.Watch(ctx); err != nil {
			logger.Warn("Options file is not watched", "path", f.Path(), "error", err)
		}
	}()
	return f, nil
}
