package core

import "github.com/cnxtech/device-os/pkg/wire"

// SendTimeRequest proactively asks the cloud for the current time
// instead of waiting for a server-initiated TIME push. The reply
// arrives through the ordinary inbound pipeline and is handled by
// handleTime like any other TIME message. Callers may invoke this
// once after a successful handshake when the host descriptor reports
// its clock is unset.
func (c *Core) SendTimeRequest() error {
	mid := c.session.NextMessageID()
	return c.sendEncrypted(wire.BuildTimeRequest(mid))
}
