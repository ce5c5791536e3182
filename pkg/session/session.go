// Package session holds the per-connection cryptographic and protocol
// state the core needs across the life of a handshake: the AES session
// key, the two chained CBC IVs, the monotonic message-id and token
// counters, and the flags (expecting_ping_ack, updating) the dispatch
// loop reads and mutates.
package session

import (
	"crypto/rsa"
	"errors"

	"github.com/cnxtech/device-os/pkg/cryptoprim"
	"github.com/cnxtech/device-os/pkg/descriptor"
	"github.com/cnxtech/device-os/pkg/wire"
)

// QueueSize is the size of the shared staging buffer backing every
// inbound and outbound message.
const QueueSize = 640

// DeviceIDLen is the length in bytes of a device identifier.
const DeviceIDLen = 12

var (
	ErrQueueTooSmall   = errors.New("session: message exceeds queue size")
	ErrFrameMisaligned = errors.New("session: ciphertext is not block-aligned")
)

// Session holds the long-term keys, the per-connection cryptographic
// state and the counters the protocol core operates on. Keys and the
// callback/descriptor surfaces are set once at construction and are
// immutable; everything else is reset by Handshake.
type Session struct {
	serverPublicKey *rsa.PublicKey
	devicePrivateKey *rsa.PrivateKey
	deviceID        [DeviceIDLen]byte

	productID              uint16
	productFirmwareVersion uint16

	callbacks  descriptor.Callbacks
	descriptor descriptor.Descriptor

	sessionKey [cryptoprim.KeySize]byte
	ivSend     [cryptoprim.BlockSize]byte
	ivReceive  [cryptoprim.BlockSize]byte
	salt       [8]byte

	messageID uint16
	token     uint8

	expectingPingAck bool
	updating         bool

	queue [QueueSize]byte
}

// Config bundles the immutable construction-time parameters for a Session.
type Config struct {
	ServerPublicKey        *rsa.PublicKey
	DevicePrivateKey       *rsa.PrivateKey
	DeviceID               [DeviceIDLen]byte
	ProductID              uint16
	ProductFirmwareVersion uint16
	Callbacks              descriptor.Callbacks
	Descriptor             descriptor.Descriptor
}

// New constructs a Session from its immutable configuration. Per-connection
// state (key, IVs, counters) starts zeroed and is populated by Handshake.
func New(cfg Config) *Session {
	s := &Session{
		serverPublicKey:        cfg.ServerPublicKey,
		devicePrivateKey:       cfg.DevicePrivateKey,
		productID:              cfg.ProductID,
		productFirmwareVersion: cfg.ProductFirmwareVersion,
		callbacks:              cfg.Callbacks,
		descriptor:             cfg.Descriptor,
	}
	s.deviceID = cfg.DeviceID
	return s
}

// Callbacks returns the host callback surface.
func (s *Session) Callbacks() descriptor.Callbacks { return s.callbacks }

// Descriptor returns the host variable/function registry.
func (s *Session) Descriptor() descriptor.Descriptor { return s.descriptor }

// ProductID and ProductFirmwareVersion are reported in HELLO.
func (s *Session) ProductID() uint16              { return s.productID }
func (s *Session) ProductFirmwareVersion() uint16 { return s.productFirmwareVersion }

// ExpectingPingAck reports whether a PING is outstanding.
func (s *Session) ExpectingPingAck() bool { return s.expectingPingAck }

// SetExpectingPingAck sets the outstanding-PING flag.
func (s *Session) SetExpectingPingAck(v bool) { s.expectingPingAck = v }

// Updating reports whether a firmware update is in progress.
func (s *Session) Updating() bool { return s.updating }

// SetUpdating sets the firmware-update-in-progress flag.
func (s *Session) SetUpdating(v bool) { s.updating = v }

// Queue exposes the shared staging buffer. Callers slice it; it is never
// concurrently accessed because the core is single-threaded.
func (s *Session) Queue() []byte { return s.queue[:] }

// NextMessageID returns the pre-incremented 16-bit message-id counter.
func (s *Session) NextMessageID() uint16 {
	s.messageID++
	return s.messageID
}

// NextToken returns the pre-incremented 8-bit token counter.
func (s *Session) NextToken() uint8 {
	s.token++
	return s.token
}

// Encrypt pads msg with strict PKCS#7, AES-128-CBC encrypts it with the
// current send IV, advances the send IV to the last ciphertext block so
// the next call chains from where this one left off, and returns the
// 2-byte length prefix followed by ciphertext, ready to write to the
// transport.
func (s *Session) Encrypt(msg []byte) ([]byte, error) {
	padded := wire.Pad(msg)
	if len(padded) > QueueSize-2 {
		return nil, ErrQueueTooSmall
	}
	if err := cryptoprim.EncryptCBC(s.sessionKey[:], s.ivSend[:], padded); err != nil {
		return nil, err
	}
	copy(s.ivSend[:], padded[len(padded)-cryptoprim.BlockSize:])

	out := make([]byte, 2+len(padded))
	out[0] = byte(len(padded) >> 8)
	out[1] = byte(len(padded))
	copy(out[2:], padded)
	return out, nil
}

// Decrypt takes the ciphertext portion of a frame (length prefix already
// stripped by the caller), captures the next receive IV from its first
// block, AES-128-CBC decrypts it in place with the current receive IV,
// and returns the decrypted buffer. The trailing PKCS#7 pad is not
// stripped; callers read the last byte themselves (per the frame codec's
// unwrap semantics).
func (s *Session) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%cryptoprim.BlockSize != 0 {
		return nil, ErrFrameMisaligned
	}
	var nextIV [cryptoprim.BlockSize]byte
	copy(nextIV[:], ciphertext[:cryptoprim.BlockSize])

	if err := cryptoprim.DecryptCBC(s.sessionKey[:], s.ivReceive[:], ciphertext); err != nil {
		return nil, err
	}
	s.ivReceive = nextIV
	return ciphertext, nil
}

// ApplyCredentials unpacks a 40-byte handshake credential block: bytes
// 0..15 become the session key, 16..31 seed both chained IVs identically,
// and 32..39 become the salt — whose bytes 32..33, 34 and 35..38 are
// simultaneously reinterpreted as the message-id seed, the token seed and
// the PRNG seed. This overlap is an on-the-wire quirk the protocol
// requires, not a bug to be designed away.
func (s *Session) ApplyCredentials(credentials []byte) {
	copy(s.sessionKey[:], credentials[0:16])
	copy(s.ivSend[:], credentials[16:32])
	copy(s.ivReceive[:], credentials[16:32])
	copy(s.salt[:], credentials[32:40])
	s.messageID = uint16(credentials[32])<<8 | uint16(credentials[33])
	s.token = credentials[34]
	s.expectingPingAck = false
	s.updating = false
}

// PRNGSeed returns the 32-bit seed aliased from salt bytes 35..38, for
// hosts that want to reseed their random source from cloud-provided
// material after a handshake.
func (s *Session) PRNGSeed() uint32 {
	return uint32(s.salt[3]) | uint32(s.salt[4])<<8 | uint32(s.salt[5])<<16 | uint32(s.salt[6])<<24
}

// SessionKeyBytes, IVSendBytes and IVReceiveBytes are exposed for tests asserting the
// handshake and IV-chaining invariants; the core itself never needs to
// read them directly once Encrypt/Decrypt are in play.
func (s *Session) SessionKeyBytes() [cryptoprim.KeySize]byte     { return s.sessionKey }
func (s *Session) IVSendBytes() [cryptoprim.BlockSize]byte       { return s.ivSend }
func (s *Session) IVReceiveBytes() [cryptoprim.BlockSize]byte    { return s.ivReceive }
func (s *Session) MessageIDValue() uint16                        { return s.messageID }
func (s *Session) TokenValue() uint8                             { return s.token }
func (s *Session) DeviceID() [DeviceIDLen]byte                   { return s.deviceID }
