// Package config loads the YAML file describing how a host binary
// should run a device: its identity, long-term keys, where to reach
// the cloud endpoint, and how to log. This is runtime host
// configuration, not the protocol wire format — pkg/core and
// pkg/session take no dependency on it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML document loaded by a host binary.
type Config struct {
	Device Device `yaml:"device"`
	Server Server `yaml:"server"`
	Keys   Keys   `yaml:"keys"`
	Log    Log    `yaml:"log"`
}

// Device identifies this device and the firmware it reports in HELLO.
type Device struct {
	ID              string `yaml:"id"`
	ProductID       uint16 `yaml:"product_id"`
	FirmwareVersion uint16 `yaml:"firmware_version"`
}

// Server describes where to reach the cloud endpoint.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Keys names the PEM files holding the long-term RSA key pair.
type Keys struct {
	DevicePrivateKeyFile string `yaml:"device_private_key_file"`
	ServerPublicKeyFile  string `yaml:"server_public_key_file"`
}

// Log configures where and how verbosely the host binary logs.
type Log struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
}

// Load reads and parses a device configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Device.ID == "" {
		return fmt.Errorf("device.id is required")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.Keys.DevicePrivateKeyFile == "" {
		return fmt.Errorf("keys.device_private_key_file is required")
	}
	if c.Keys.ServerPublicKeyFile == "" {
		return fmt.Errorf("keys.server_public_key_file is required")
	}
	return nil
}

// Addr returns the "host:port" string for dialing the cloud endpoint.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
