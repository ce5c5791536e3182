package core

import "errors"

var (
	// ErrDisconnected is returned by Tick when the transport callback
	// reports failure or an oversized length prefix is received.
	ErrDisconnected = errors.New("core: disconnected")

	// ErrPingTimeout is returned by Tick when a PING goes unacknowledged
	// for longer than PingAckTimeout.
	ErrPingTimeout = errors.New("core: ping ack timeout")

	// ErrUpdating is returned by SendEvent while a firmware update is in
	// progress.
	ErrUpdating = errors.New("core: event publish blocked during firmware update")

	// ErrRateLimited is returned by SendEvent when the system or
	// non-system event rate limit denies the publish.
	ErrRateLimited = errors.New("core: event rate limit exceeded")

	errBadVariableValue = errors.New("core: variable value does not match its declared type")
)
