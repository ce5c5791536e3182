// Package wire implements the CoAP-inspired binary message envelope the
// protocol core exchanges with the cloud once a session is established:
// header layout, Uri-Path/Uri-Query option encoding, PKCS#7 padding, and
// the message-type classifier that turns a decrypted buffer into one of
// the protocol's request/response kinds.
//
// Nothing in this package performs encryption; it only shapes and reads
// plaintext frames. AES-CBC and the chained IVs live in the session
// package, which calls Pad before encrypting; Decrypt leaves the pad in
// place, and callers measure it with UnpadLen.
package wire
