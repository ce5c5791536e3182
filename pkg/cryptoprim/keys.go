// Package cryptoprim wraps the RSA, AES-CBC and HMAC primitives the
// handshake and frame codec depend on. The protocol core never talks to
// crypto/rsa, crypto/aes or crypto/hmac directly; it goes through the
// small surface defined here so the wire-format quirks (PKCS1v15, no
// OAEP/PSS, HMAC-SHA1) stay in one place.
package cryptoprim

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
)

var (
	ErrInvalidPEM = errors.New("cryptoprim: invalid PEM data")
	ErrInvalidKey = errors.New("cryptoprim: invalid RSA key")
)

// EncodePublicKeyPKCS1 renders pub as a PKCS#1 DER byte slice, the same
// representation the handshake embeds in its cleartext.
func EncodePublicKeyPKCS1(pub *rsa.PublicKey) []byte {
	return x509.MarshalPKCS1PublicKey(pub)
}

// DecodePublicKeyPKCS1 parses a PKCS#1 DER-encoded RSA public key.
func DecodePublicKeyPKCS1(der []byte) (*rsa.PublicKey, error) {
	pub, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	return pub, nil
}

// ReadPrivateKeyPEM reads a PKCS#1 PEM-encoded RSA private key from path.
func ReadPrivateKeyPEM(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodePrivateKeyPEM(data)
}

// DecodePrivateKeyPEM parses a PKCS#1 PEM-encoded RSA private key.
func DecodePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		return nil, ErrInvalidPEM
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	return key, nil
}

// ReadPublicKeyPEM reads a PKCS#1 PEM-encoded RSA public key from path.
func ReadPublicKeyPEM(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodePublicKeyPEM(data)
}

// DecodePublicKeyPEM parses a PKCS#1 PEM-encoded RSA public key.
func DecodePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "RSA PUBLIC KEY" {
		return nil, ErrInvalidPEM
	}
	return DecodePublicKeyPKCS1(block.Bytes)
}

// EncryptPKCS1v15 RSA-encrypts plaintext under pub using PKCS1v15 padding,
// matching the handshake's wire format (not OAEP).
func EncryptPKCS1v15(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	return rsa.EncryptPKCS1v15(rand.Reader, pub, plaintext)
}

// DecryptPKCS1v15 RSA-decrypts ciphertext with priv using PKCS1v15 padding.
func DecryptPKCS1v15(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	return rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext)
}

// SignPKCS1v15 signs the already-hashed digest with priv using PKCS1v15.
func SignPKCS1v15(priv *rsa.PrivateKey, hashed []byte) ([]byte, error) {
	return rsa.SignPKCS1v15(rand.Reader, priv, 0, hashed)
}

// VerifyPKCS1v15 verifies sig over the already-hashed digest against pub.
// hash is 0 (crypto.Hash(0)) because the handshake signs a raw HMAC
// digest, not a hash of the message itself.
func VerifyPKCS1v15(pub *rsa.PublicKey, hashed, sig []byte) error {
	return rsa.VerifyPKCS1v15(pub, 0, hashed, sig)
}
