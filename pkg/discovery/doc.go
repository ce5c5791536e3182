// Package discovery advertises a running device on the local network
// segment via mDNS, independent of and prior to the cloud session
// implemented by pkg/session and pkg/core.
//
// This is the Go-idiomatic realization of the legacy firmware's
// presence-announcement datagram: instead of a raw UDP broadcast of a
// bespoke cleartext packet, the device registers a single discoverable
// service instance carrying its device id and product id as TXT
// records, so that local tooling (an interactive shell, a test
// harness) can find a running device without going through the cloud
// server's rendezvous step. It never touches the session, its keys,
// or the dispatch loop.
package discovery
