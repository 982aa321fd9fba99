// Package config defines the command line and config file layout.
package config

import (
	"github.com/Alia5/ps2host/internal/cmd"
	"github.com/Alia5/ps2host/internal/log"
)

type CLI struct {
	Log    log.Config `embed:"" prefix:"log."`
	Config string     `help:"Config file to load before the default locations" type:"path" env:"PS2HOST_CONFIG"`

	Run       cmd.Run           `cmd:"" help:"Translate a live keyboard to the host" default:"withargs"`
	Replay    cmd.Replay        `cmd:"" help:"Translate a captured scan code file and print the host bytes"`
	Conf      cmd.ConfigCommand `cmd:"" name:"config" help:"Manage configuration files"`
	Install   cmd.Install       `cmd:"" help:"Install ps2host as a systemd service"`
	Uninstall cmd.Uninstall     `cmd:"" help:"Remove the ps2host systemd service"`
}
