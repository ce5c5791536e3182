package discovery

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// AdvertiserConfig configures an Advertiser.
type AdvertiserConfig struct {
	// Interface restricts advertising to a single network interface.
	// Empty string means all interfaces.
	Interface string

	// TTL overrides the mDNS record TTL. Zero uses the library default.
	TTL time.Duration
}

// Advertiser announces a device's presence on the local network via mDNS.
type Advertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewAdvertiser creates a new mDNS presence advertiser.
func NewAdvertiser(config AdvertiserConfig) *Advertiser {
	return &Advertiser{config: config}
}

// Start registers the presence-announcement service, replacing any
// previously running advertisement.
func (a *Advertiser) Start(info Info) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		info.instanceName(),
		ServiceType,
		Domain,
		info.port(),
		info.txtStrings(),
		a.interfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("discovery: register presence service: %w", err)
	}

	a.server = server
	return nil
}

// Update replaces the TXT records of the running advertisement, e.g.
// after a firmware update changes the reported version.
func (a *Advertiser) Update(info Info) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotAdvertising
	}
	a.server.SetText(info.txtStrings())
	return nil
}

// Stop withdraws the presence announcement, if any is running.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

func (a *Advertiser) interfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}
