// Command device-core is an example host binary that wires a TCP
// transport, a YAML-loaded configuration and an in-memory descriptor
// into the protocol core, producing a runnable simulated device.
//
// Usage:
//
//	device-core -config device.yaml [-log-level debug] [-discover]
package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cnxtech/device-os/cmd/device-core/interactive"
	"github.com/cnxtech/device-os/pkg/config"
	"github.com/cnxtech/device-os/pkg/core"
	"github.com/cnxtech/device-os/pkg/cryptoprim"
	"github.com/cnxtech/device-os/pkg/discovery"
	"github.com/cnxtech/device-os/pkg/log"
	"github.com/cnxtech/device-os/pkg/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		logLevel   string
		port       int
		interact   bool
		advertise  bool
	)
	fs := newFlagSet(&configPath, &logLevel, &port, &interact, &advertise)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	slogLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))

	cfg, err := config.Load(configPath)
	if err != nil {
		slogLogger.Error("loading configuration", "error", err)
		return 1
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	devicePriv, err := cryptoprim.ReadPrivateKeyPEM(cfg.Keys.DevicePrivateKeyFile)
	if err != nil {
		slogLogger.Error("loading device private key", "error", err)
		return 1
	}
	serverPub, err := cryptoprim.ReadPublicKeyPEM(cfg.Keys.ServerPublicKeyFile)
	if err != nil {
		slogLogger.Error("loading server public key", "error", err)
		return 1
	}

	conn, err := net.DialTimeout("tcp", cfg.Addr(), 10*time.Second)
	if err != nil {
		slogLogger.Error("connecting to cloud endpoint", "addr", cfg.Addr(), "error", err)
		return 1
	}
	defer conn.Close()

	if advertise {
		adv := discovery.NewAdvertiser(discovery.AdvertiserConfig{})
		if err := adv.Start(discovery.Info{
			DeviceID:  cfg.Device.ID,
			ProductID: fmt.Sprintf("%d", cfg.Device.ProductID),
			Firmware:  fmt.Sprintf("%d", cfg.Device.FirmwareVersion),
		}); err != nil {
			slogLogger.Warn("starting local-network advertisement", "error", err)
		} else {
			defer adv.Stop()
		}
	}

	var deviceID [session.DeviceIDLen]byte
	copy(deviceID[:], cfg.Device.ID)

	desc := newDemoDescriptor()
	cb := newConnCallbacks(conn, slogLogger)

	sess := session.New(session.Config{
		ServerPublicKey:        serverPub,
		DevicePrivateKey:       devicePriv,
		DeviceID:               deviceID,
		ProductID:              cfg.Device.ProductID,
		ProductFirmwareVersion: cfg.Device.FirmwareVersion,
		Callbacks:              cb,
		Descriptor:             desc,
	})

	c := core.New(sess, nil)
	c.SetLogger(log.NewSlogAdapter(slogLogger), uuid.NewString())

	if _, err := sess.Handshake(false); err != nil {
		slogLogger.Error("handshake failed", "error", err)
		return 1
	}
	slogLogger.Info("handshake complete")

	if err := c.SendSubscriptions(); err != nil {
		slogLogger.Warn("resending subscriptions after handshake", "error", err)
	}

	if interact {
		shell := interactive.New(c, func() { conn.Close() })
		go shell.Run()
	}

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		ok, err := c.Tick()
		if ok {
			continue
		}
		if err != nil {
			slogLogger.Error("disconnected", "error", err)
			return 1
		}
		return 0
	}
	return 0
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
