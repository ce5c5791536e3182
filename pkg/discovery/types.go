package discovery

import "errors"

const (
	// ServiceType is the single mDNS service type this package advertises.
	ServiceType = "_device-core._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is used when Info.Port is zero.
	DefaultPort = 8443

	// MaxInstanceNameLen bounds the mDNS instance name length.
	MaxInstanceNameLen = 63
)

// TXT record keys carried by the presence-announcement service.
const (
	TXTKeyDeviceID  = "DI" // device id
	TXTKeyProductID = "PI" // product id
	TXTKeyFirmware  = "FW" // firmware version (optional)
)

// ErrNotAdvertising is returned by operations that require an active
// advertisement (e.g. updating TXT records) when none is running.
var ErrNotAdvertising = errors.New("discovery: not advertising")

// Info describes the device this package announces on the network.
type Info struct {
	// DeviceID identifies the device, matching the id sent during the handshake.
	DeviceID string

	// ProductID identifies the product/model, matching the id reported in HELLO.
	ProductID string

	// Firmware is the firmware version string, optional.
	Firmware string

	// Port is the port number published in the service record.
	// Zero defaults to DefaultPort.
	Port int
}

func (i *Info) txtStrings() []string {
	txt := []string{
		TXTKeyDeviceID + "=" + i.DeviceID,
		TXTKeyProductID + "=" + i.ProductID,
	}
	if i.Firmware != "" {
		txt = append(txt, TXTKeyFirmware+"="+i.Firmware)
	}
	return txt
}

func (i *Info) instanceName() string {
	name := i.DeviceID
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}

func (i *Info) port() int {
	if i.Port == 0 {
		return DefaultPort
	}
	return i.Port
}
