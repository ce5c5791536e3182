package core

import (
	"strings"

	"github.com/cnxtech/device-os/pkg/subscription"
	"github.com/cnxtech/device-os/pkg/wire"
)

// SendEvent publishes name/data as a POST event, subject to the
// updating guard and the two independent rate limiters. It fails fast
// without touching the transport when denied.
func (c *Core) SendEvent(name string, data []byte, ttl uint32, eventType uint8) error {
	c.mu.Lock()
	if c.session.Updating() {
		c.mu.Unlock()
		return ErrUpdating
	}
	now := c.session.Callbacks().Millis()
	if isSystemEvent(name) {
		if !c.admitSystemEvent(now) {
			c.mu.Unlock()
			return ErrRateLimited
		}
	} else {
		if !c.admitNonSystemEvent(now) {
			c.mu.Unlock()
			return ErrRateLimited
		}
	}
	c.mu.Unlock()

	mid := c.session.NextMessageID()
	return c.sendEncrypted(wire.BuildEvent(mid, name, ttl, eventType, data))
}

// isSystemEvent reports the rate-limit-relevant classification: a
// case-insensitive "spark" prefix marks a system event.
func isSystemEvent(name string) bool {
	return len(name) >= 5 && strings.EqualFold(name[:5], "spark")
}

// admitSystemEvent enforces at most MaxSystemEventsPerBucket events per
// ~65.5-second bucket, identified by the upper 16 bits of the millisecond
// clock. It does not look at the event name and counts every call, so
// callers invoke it only for events that isSystemEvent accepts.
func (c *Core) admitSystemEvent(now uint32) bool {
	bucket := uint16(now >> systemEventBucketShift)
	if bucket != c.sysEventBucket {
		c.sysEventBucket = bucket
		c.sysEventCount = 0
	}
	if c.sysEventCount >= MaxSystemEventsPerBucket {
		return false
	}
	c.sysEventCount++
	return true
}

// admitNonSystemEvent enforces at most nonSystemEventBurst successful
// publishes within any nonSystemEventWindow-ms span, using a ring of the
// most recent admission timestamps. Only admitted events are recorded;
// a denial leaves the ring untouched so the window reflects genuine
// publish activity rather than attempt volume.
func (c *Core) admitNonSystemEvent(now uint32) bool {
	oldest := c.nonSysRing[c.nonSysNext]
	if now-oldest < nonSystemEventWindow {
		return false
	}
	c.nonSysRing[c.nonSysNext] = now
	c.nonSysNext = (c.nonSysNext + 1) % len(c.nonSysRing)
	return true
}

// AddEventHandler registers handler for events whose name has filter as
// a byte-wise prefix. deviceID restricts delivery to subscription.Scope
// semantics; see pkg/subscription for the table's matching rules.
func (c *Core) AddEventHandler(filter string, handler subscription.Handler, scope subscription.Scope, deviceID string) error {
	return c.subs.AddEventHandler(filter, handler, scope, deviceID)
}

// RemoveEventHandlers clears every entry matching name, or the entire
// table when name is empty.
func (c *Core) RemoveEventHandlers(name string) {
	c.subs.RemoveEventHandlers(name)
}

// SendSubscriptions rebuilds the cloud side's view of this device's
// subscriptions by sending one SUBSCRIBE message per handler table
// entry. Callers must invoke this after every successful handshake.
func (c *Core) SendSubscriptions() error {
	for _, e := range c.subs.Entries() {
		mid := c.session.NextMessageID()
		scopeOrDevice := e.DeviceID
		if scopeOrDevice == "" && e.Scope == subscription.ScopeFirehose {
			scopeOrDevice = e.Scope.String()
		}
		if err := c.sendEncrypted(wire.BuildSubscribe(mid, e.Filter, scopeOrDevice)); err != nil {
			return err
		}
	}
	return nil
}
