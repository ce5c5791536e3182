package core

import (
	"github.com/cnxtech/device-os/pkg/descriptor"
	"github.com/cnxtech/device-os/pkg/log"
	"github.com/cnxtech/device-os/pkg/session"
	"github.com/cnxtech/device-os/pkg/wire"
)

// Tick runs one non-blocking iteration of the dispatch loop: it attempts
// a non-blocking read of the 2-byte length prefix, delegates to the
// inbound pipeline on arrival, and otherwise runs the keep-alive and
// chunk-miss timers. It must be called frequently by the host's own
// main loop; it never blocks beyond the bounded reads described by the
// session's I/O stall timeout.
//
// Tick returns false, with an error, exactly when the connection should
// be torn down: a transport failure, an oversized length prefix, or an
// unacknowledged ping. It returns true otherwise, including when no
// data was available this tick.
func (c *Core) Tick() (bool, error) {
	cb := c.session.Callbacks()

	var lenBuf [2]byte
	n, err := cb.Receive(lenBuf[:])
	if err != nil || n < 0 {
		return false, ErrDisconnected
	}
	if n == 0 {
		return c.runTimers(cb)
	}
	if n < 2 {
		if err := c.session.ReceiveFull(lenBuf[n:]); err != nil {
			return false, ErrDisconnected
		}
	}

	l := int(lenBuf[0])<<8 | int(lenBuf[1])
	if l <= 0 || l > session.QueueSize {
		return false, ErrDisconnected
	}

	buf := c.session.Queue()[:l]
	if err := c.session.ReceiveFull(buf); err != nil {
		return false, ErrDisconnected
	}
	if err := c.handleMessage(buf); err != nil {
		return false, ErrDisconnected
	}
	return true, nil
}

func (c *Core) runTimers(cb descriptor.Callbacks) (bool, error) {
	now := cb.Millis()

	if c.session.Updating() && elapsed(c.lastChunkMillis, now) > ChunkMissTimeout {
		c.lastChunkMillis = now
		mid := c.session.NextMessageID()
		if err := c.sendEncrypted(wire.BuildChunkMissed(mid, c.chunkIndex)); err != nil {
			return false, ErrDisconnected
		}
		return true, nil
	}

	if c.session.ExpectingPingAck() && elapsed(c.lastMessageMillis, now) > PingAckTimeout {
		c.logStateChange(log.StateEntityConnection, "connected", "disconnected", "ping ack timeout")
		return false, ErrPingTimeout
	}

	if !c.session.ExpectingPingAck() && elapsed(c.lastMessageMillis, now) > KeepAliveInterval {
		mid := c.session.NextMessageID()
		if err := c.sendEncrypted(wire.BuildPing(mid)); err != nil {
			return false, ErrDisconnected
		}
		c.session.SetExpectingPingAck(true)
		c.lastMessageMillis = now
		return true, nil
	}

	return true, nil
}

// elapsed returns to-from using uint32 wraparound arithmetic, matching
// the millisecond clock's rollover behavior.
func elapsed(from, to uint32) uint32 {
	return to - from
}
