// Package options holds the translator switches in a TOML file that can be
// edited while the translator runs, standing in for the two jumpers of a
// hardware interface.
//
//	applicationKeypad = true
//	swapCapsAndControl = false
package options

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml"
)

type fileValues struct {
	ApplicationKeypad  bool `toml:"applicationKeypad"`
	SwapCapsAndControl bool `toml:"swapCapsAndControl"`
}

// File is a translate.Options backed by a TOML file. Both values are read
// atomically, so the translator sees a reload on its next event.
type File struct {
	path   string
	logger *slog.Logger

	keypad atomic.Bool
	swap   atomic.Bool
}

// Load reads path once. A missing file leaves both options off.
func Load(path string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	f := &File{path: path, logger: logger}
	if err := f.Reload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return f, nil
}

func (f *File) ApplicationKeypad() bool  { return f.keypad.Load() }
func (f *File) SwapCapsAndControl() bool { return f.swap.Load() }

// Path returns the file the options are read from.
func (f *File) Path() string { return f.path }

// Reload re-reads the file. On error the previous values are kept.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read options %s: %w", f.path, err)
	}
	var v fileValues
	if err := toml.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("parse options %s: %w", f.path, err)
	}
	f.Set(v.ApplicationKeypad, v.SwapCapsAndControl)
	return nil
}

// Set overrides both values until the next reload.
func (f *File) Set(applicationKeypad, swapCapsAndControl bool) {
	oldKeypad := f.keypad.Swap(applicationKeypad)
	oldSwap := f.swap.Swap(swapCapsAndControl)
	if oldKeypad != applicationKeypad || oldSwap != swapCapsAndControl {
		f.logger.Info("Options changed",
			"applicationKeypad", applicationKeypad,
			"swapCapsAndControl", swapCapsAndControl)
	}
}

// Save writes the current values back to the file.
func (f *File) Save() error {
	data, err := toml.Marshal(fileValues{
		ApplicationKeypad:  f.ApplicationKeypad(),
		SwapCapsAndControl: f.SwapCapsAndControl(),
	})
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write options %s: %w", f.path, err)
	}
	return nil
}

// Watch reloads the file whenever it is written, created or renamed into
// place, until ctx is done. The directory is watched rather than the file so
// editors that replace the file are picked up.
func (f *File) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(f.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(f.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := f.Reload(); err != nil {
				f.logger.Warn("Options reload failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("Options watcher error", "error", err)
		}
	}
}
