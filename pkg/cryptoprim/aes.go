package cryptoprim

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha1"
	"errors"
)

// KeySize is the AES-128 session key size in bytes.
const KeySize = 16

// BlockSize is the AES block size in bytes, and therefore the PKCS#7
// padding unit and the IV size for every encrypted frame.
const BlockSize = aes.BlockSize

// ErrShortBuffer is returned when a buffer is not a multiple of BlockSize.
var ErrShortBuffer = errors.New("cryptoprim: buffer is not a multiple of the block size")

// EncryptCBC AES-128-CBC encrypts src in place using key and iv. len(src)
// must be a multiple of BlockSize. iv is not mutated; callers are
// responsible for capturing the new chained IV from the returned
// ciphertext themselves.
func EncryptCBC(key, iv, src []byte) error {
	if len(src)%BlockSize != 0 {
		return ErrShortBuffer
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(src, src)
	return nil
}

// DecryptCBC AES-128-CBC decrypts src in place using key and iv.
// len(src) must be a multiple of BlockSize.
func DecryptCBC(key, iv, src []byte) error {
	if len(src)%BlockSize != 0 {
		return ErrShortBuffer
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(src, src)
	return nil
}

// HMACSHA1 size in bytes, matching the handshake's 20-byte digest buffer.
const HMACSize = sha1.Size

// ComputeHMACSHA1 returns the HMAC-SHA1 of data keyed by key.
func ComputeHMACSHA1(key, data []byte) []byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// EqualHMAC reports whether two HMAC digests are equal, in constant time.
func EqualHMAC(a, b []byte) bool {
	return hmac.Equal(a, b)
}
