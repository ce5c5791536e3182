package core

import (
	"sync"
	"time"

	"github.com/cnxtech/device-os/pkg/log"
	"github.com/cnxtech/device-os/pkg/session"
	"github.com/cnxtech/device-os/pkg/subscription"
	"github.com/cnxtech/device-os/pkg/wire"
)

// Timer thresholds, in milliseconds, matching the keep-alive, ping-ack
// and chunk-miss deadlines the dispatch loop enforces.
const (
	KeepAliveInterval = 15000
	PingAckTimeout    = 10000
	ChunkMissTimeout  = 3000
)

// Field-length and rate-limit constants the inbound and outbound
// pipelines enforce.
const (
	MaxFunctionKeyLength = 12
	MaxVariableKeyLength = 12
	MaxFunctionArgLength = 64

	MaxSystemEventsPerBucket = 255
	systemEventBucketShift   = 16

	nonSystemEventBurst  = 4
	nonSystemEventWindow = 1000
)

// Core is the single-threaded protocol dispatch loop described by the
// wire format in pkg/wire: it owns no transport, only the session state
// and the subscription table it drives through one tick at a time.
type Core struct {
	mu sync.Mutex

	session *session.Session
	subs    *subscription.Manager

	lastMessageMillis uint32
	lastChunkMillis   uint32
	chunkIndex        uint16

	sysEventBucket uint16
	sysEventCount  int

	nonSysRing [nonSystemEventBurst]uint32
	nonSysNext int

	chunkCRCOverride *bool

	logger       log.Logger
	connectionID string
}

// New builds a Core around an already-constructed Session. A nil subs
// creates a handler table of subscription.DefaultTableSize. Protocol
// logging is disabled (log.NoopLogger) until SetLogger is called.
func New(sess *session.Session, subs *subscription.Manager) *Core {
	if subs == nil {
		subs = subscription.NewManager()
	}
	c := &Core{session: sess, subs: subs, logger: log.NoopLogger{}}
	for i := range c.nonSysRing {
		c.nonSysRing[i] = negativeSentinel
	}
	return c
}

// SetLogger installs the protocol logger Tick and handleMessage report
// frame classification and session state transitions to, and sets the
// connection identifier threaded into every event it logs. A nil logger
// installs log.NoopLogger.
func (c *Core) SetLogger(logger log.Logger, connectionID string) {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
	c.connectionID = connectionID
}

func (c *Core) logMessage(direction log.Direction, msgID uint16, kind *wire.MessageType, key string, code *wire.Code) {
	c.mu.Lock()
	logger, connID := c.logger, c.connectionID
	c.mu.Unlock()
	mtype := log.MessageTypeNotification
	if code != nil {
		mtype = log.MessageTypeResponse
	} else if kind != nil {
		mtype = log.MessageTypeRequest
	}
	logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    direction,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		Message: &log.MessageEvent{
			Type:      mtype,
			MessageID: msgID,
			Kind:      kind,
			Key:       key,
			Code:      code,
		},
	})
}

func (c *Core) logStateChange(entity log.StateEntity, oldState, newState, reason string) {
	c.mu.Lock()
	logger, connID := c.logger, c.connectionID
	c.mu.Unlock()
	logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerService,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

// negativeSentinel is far enough in the past that the first burst of
// non-system events within a fresh Core is never denied by stale ring
// state.
var zeroUint32 uint32
var negativeSentinel = zeroUint32 - uint32(nonSystemEventWindow)

// Session returns the underlying session.
func (c *Core) Session() *session.Session { return c.session }

// Subscriptions returns the handler table SendSubscriptions and the
// EVENT dispatch path both consult.
func (c *Core) Subscriptions() *subscription.Manager { return c.subs }

// SetChunkCRCOverride forces the outcome of the CHUNK CRC comparison for
// tests exercising the mismatch and match paths deterministically. Pass
// nil to restore the real comparison against Callbacks.CalculateCRC.
func (c *Core) SetChunkCRCOverride(match *bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunkCRCOverride = match
}
