// Package log provides structured protocol logging for the device core.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (transport, wire, service).
// It is separate from operational logging (slog) - protocol capture provides
// a complete machine-readable event trace for debugging and analysis.
//
// # Basic Usage
//
// Applications install a Logger on the protocol core with
// core.Core.SetLogger, together with a connection id:
//
//	// For development: log to console via slog
//	c.SetLogger(log.NewSlogAdapter(slog.Default()), connID)
//
//	// For production: write to binary file
//	fl, err := log.NewFileLogger("/var/log/device-core/session.clog")
//	if err != nil {
//	    return err
//	}
//	c.SetLogger(fl, connID)
//
//	// Both: use MultiLogger
//	c.SetLogger(log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl), connID)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: Raw frame bytes (FrameEvent)
//   - Wire: Decoded CoAP-framed messages (MessageEvent)
//   - Service: Connection, session and handshake transitions (StateChangeEvent)
//
// Control messages (ping/pong/close) and errors have dedicated event types.
//
// # File Format
//
// Log files use CBOR encoding with a .clog extension, and are read back
// with NewReader or NewFilteredReader.
package log
