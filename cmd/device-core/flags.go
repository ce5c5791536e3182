package main

import "flag"

// newFlagSet mirrors the teacher's device command's flag surface:
// -config, -log-level and -port, plus -interactive and -discover for
// this binary's debug shell and local-network advertisement.
func newFlagSet(configPath, logLevel *string, port *int, interact, advertise *bool) *flag.FlagSet {
	fs := flag.NewFlagSet("device-core", flag.ContinueOnError)
	fs.StringVar(configPath, "config", "device.yaml", "Device configuration file path")
	fs.StringVar(logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.IntVar(port, "port", 0, "Override the server port from the configuration file")
	fs.BoolVar(interact, "interactive", false, "Launch the interactive debug shell")
	fs.BoolVar(advertise, "discover", false, "Advertise this device on the local network via mDNS")
	return fs
}
