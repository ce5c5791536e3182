// Package subscription implements the fixed-size event handler table the
// protocol core consults for inbound EVENT dispatch and from which
// outbound SUBSCRIBE messages are rebuilt after every handshake.
//
// # Matching
//
// Dispatch is a linear scan that stops at the first empty slot. The
// first entry whose filter is a byte-wise prefix of the incoming event
// name wins; there is no most-specific-match resolution, so handler
// order determines precedence exactly as it does on the device.
//
// # Lifecycle
//
// The table persists across reconnects; it is the caller's job to
// invoke SendSubscriptions again after every successful handshake so
// the cloud side re-learns which events this device wants.
package subscription
