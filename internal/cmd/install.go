package cmd

import "log/slog"

// Install registers ps2host as a system service running the run command
// with the given arguments.
type Install struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments for the run command, e.g. --source.kind=evdev"`
}

func (i *Install) Run(logger *slog.Logger) error {
	return install(logger, i.Args)
}

// Uninstall removes the system service.
type Uninstall struct{}

func (u *Uninstall) Run(logger *slog.Logger) error {
	return uninstall(logger)
}
