// Package core implements the device-side dispatch loop: the non-blocking
// tick that reads length-prefixed encrypted frames off the transport,
// classifies and handles each one, runs the keep-alive and chunk-miss
// timers, and publishes outbound events and subscriptions.
//
// Core holds no transport of its own. It drives a *session.Session through
// its Callbacks and Descriptor collaborators and a *subscription.Manager
// for inbound event routing - wiring, not owning, every external resource.
package core
