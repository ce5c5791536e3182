package session

import (
	"errors"
	"time"

	"github.com/cnxtech/device-os/pkg/cryptoprim"
	"github.com/cnxtech/device-os/pkg/wire"
)

// IOStallTimeout bounds how long blockingSend/blockingReceive will poll a
// callback that keeps returning zero progress before giving up.
const IOStallTimeout = 20 * time.Second

var (
	ErrHandshakeDecryptFailed  = errors.New("session: credential decrypt failed")
	ErrHandshakeSignatureFailed = errors.New("session: credential signature verification failed")
	ErrDisconnected             = errors.New("session: transport disconnected")
)

// HandshakeFailureCode mirrors the two distinct non-zero codes the
// original set_key reports, for callers that want to distinguish decrypt
// failure from signature failure rather than match on error value alone.
type HandshakeFailureCode int

const (
	HandshakeOK             HandshakeFailureCode = 0
	HandshakeDecryptFailed  HandshakeFailureCode = 1
	HandshakeSignatureFailed HandshakeFailureCode = 2
)

// Handshake runs the ten-step handshake sequence and, on success, leaves
// the session populated with a fresh key, chained IVs and seeded
// counters, then sends the initial HELLO. newlyUpgraded should reflect
// the host descriptor's post-OTA boot status.
func (s *Session) Handshake(newlyUpgraded bool) (HandshakeFailureCode, error) {
	// Step 1: receive the 40-byte server nonce.
	nonce := s.queue[:40]
	if err := s.blockingReceive(nonce); err != nil {
		return HandshakeOK, err
	}

	// Step 2+3: device id followed by the device public key.
	pub := cryptoprim.EncodePublicKeyPKCS1(&s.devicePrivateKey.PublicKey)
	cleartextLen := 40 + DeviceIDLen + len(pub)
	cleartext := s.queue[:cleartextLen]
	copy(cleartext[40:52], s.deviceID[:])
	copy(cleartext[52:], pub)

	// Step 4+5: RSA-encrypt under the server public key and send.
	ciphertext, err := cryptoprim.EncryptPKCS1v15(s.serverPublicKey, cleartext)
	if err != nil {
		return HandshakeOK, err
	}
	if err := s.blockingSend(ciphertext); err != nil {
		return HandshakeOK, err
	}

	// Step 6: receive the 128-byte wrapped credentials and the 256-byte
	// signature over their HMAC.
	signedCredentials := s.queue[:384]
	if err := s.blockingReceive(signedCredentials); err != nil {
		return HandshakeOK, err
	}
	wrappedCredentials := signedCredentials[:128]
	signature := signedCredentials[128:384]

	// Step 7: RSA-decrypt the 128-byte block with the device private key.
	credentials, err := cryptoprim.DecryptPKCS1v15(s.devicePrivateKey, wrappedCredentials)
	if err != nil || len(credentials) != 40 {
		return HandshakeDecryptFailed, ErrHandshakeDecryptFailed
	}

	// Step 8: verify the signature over HMAC(wrappedCredentials||credentials),
	// keyed by the just-decrypted session key (credentials[0:16]).
	hmacInput := append(append([]byte{}, wrappedCredentials...), credentials...)
	digest := cryptoprim.ComputeHMACSHA1(credentials[:16], hmacInput)
	if err := cryptoprim.VerifyPKCS1v15(s.serverPublicKey, digest, signature); err != nil {
		return HandshakeSignatureFailed, ErrHandshakeSignatureFailed
	}

	// Step 9: unpack credentials.
	s.ApplyCredentials(credentials)

	// Step 10: send HELLO.
	if err := s.sendHello(newlyUpgraded); err != nil {
		return HandshakeOK, err
	}
	return HandshakeOK, nil
}

func (s *Session) sendHello(newlyUpgraded bool) error {
	mid := s.NextMessageID()
	frame, err := s.Encrypt(wire.BuildHello(mid, s.productID, s.productFirmwareVersion, newlyUpgraded))
	if err != nil {
		return err
	}
	return s.blockingSend(frame)
}

// SendFull polls Callbacks.Send until all of buf is written or the I/O
// stall timeout elapses with no progress. Exported so the dispatch loop
// can send encrypted frames through the same stall-timeout logic the
// handshake uses.
func (s *Session) SendFull(buf []byte) error {
	return s.blockingSend(buf)
}

// ReceiveFull polls Callbacks.Receive until buf is fully populated or the
// I/O stall timeout elapses with no progress. Exported so the dispatch
// loop can block-read a message body of known length without duplicating
// the handshake's stall logic.
func (s *Session) ReceiveFull(buf []byte) error {
	return s.blockingReceive(buf)
}

// blockingSend polls Callbacks.Send until all of buf is written or the
// I/O stall timeout elapses with no progress.
func (s *Session) blockingSend(buf []byte) error {
	start := s.callbacks.Millis()
	lastProgress := start
	for len(buf) > 0 {
		n, err := s.callbacks.Send(buf)
		if err != nil || n < 0 {
			return ErrDisconnected
		}
		if n > 0 {
			buf = buf[n:]
			lastProgress = s.callbacks.Millis()
			continue
		}
		if millisElapsed(lastProgress, s.callbacks.Millis()) > uint32(IOStallTimeout/time.Millisecond) {
			return ErrDisconnected
		}
	}
	return nil
}

// blockingReceive polls Callbacks.Receive until buf is fully populated or
// the I/O stall timeout elapses with no progress.
func (s *Session) blockingReceive(buf []byte) error {
	lastProgress := s.callbacks.Millis()
	for len(buf) > 0 {
		n, err := s.callbacks.Receive(buf)
		if err != nil || n < 0 {
			return ErrDisconnected
		}
		if n > 0 {
			buf = buf[n:]
			lastProgress = s.callbacks.Millis()
			continue
		}
		if millisElapsed(lastProgress, s.callbacks.Millis()) > uint32(IOStallTimeout/time.Millisecond) {
			return ErrDisconnected
		}
	}
	return nil
}

func millisElapsed(from, to uint32) uint32 {
	return to - from // wraps correctly on uint32 overflow
}
