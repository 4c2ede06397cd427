// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the per-record encryption used by the storage
// protocol.
//
// Every record payload is encrypted with AES-256-CBC under a random IV and
// authenticated with HMAC-SHA256 over the base64 ciphertext (encrypt then
// MAC). The key pair lives in a [KeyBundle]; the bundles for all
// collections are kept in the crypto/keys record, itself encrypted with the
// account's root bundle.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/MKhiriev/go-sync15/models"
)

// KeySize is the length of both halves of a bundle.
const KeySize = 32

// KeyBundle is an immutable AES-256 encryption key and HMAC-SHA256 key pair
// scoped to one collection (or to the default scope).
type KeyBundle struct {
	encKey [KeySize]byte
	macKey [KeySize]byte
}

// NewKeyBundle builds a bundle from raw keys. Both must be [KeySize] bytes.
func NewKeyBundle(encKey, macKey []byte) (KeyBundle, error) {
	if len(encKey) != KeySize || len(macKey) != KeySize {
		return KeyBundle{}, newError("new key bundle",
			fmt.Errorf("%w: want %d byte keys, got %d and %d", ErrInvalidKey, KeySize, len(encKey), len(macKey)))
	}

	var kb KeyBundle
	copy(kb.encKey[:], encKey)
	copy(kb.macKey[:], macKey)
	return kb, nil
}

// KeyBundleFromRootSecret splits a 64-byte root secret into the encryption
// half and the HMAC half.
func KeyBundleFromRootSecret(secret []byte) (KeyBundle, error) {
	if len(secret) != 2*KeySize {
		return KeyBundle{}, newError("root key bundle",
			fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, 2*KeySize, len(secret)))
	}
	return NewKeyBundle(secret[:KeySize], secret[KeySize:])
}

// KeyBundleFromBase64 builds a bundle from the base64 pair stored in the
// crypto/keys record.
func KeyBundleFromBase64(encB64, macB64 string) (KeyBundle, error) {
	enc, err := base64.StdEncoding.DecodeString(encB64)
	if err != nil {
		return KeyBundle{}, newError("decode key", fmt.Errorf("%w: %v", ErrInvalidKey, err))
	}
	mac, err := base64.StdEncoding.DecodeString(macB64)
	if err != nil {
		return KeyBundle{}, newError("decode key", fmt.Errorf("%w: %v", ErrInvalidKey, err))
	}
	return NewKeyBundle(enc, mac)
}

// NewRandomKeyBundle generates a bundle from the OS CSPRNG.
func NewRandomKeyBundle() (KeyBundle, error) {
	buf := make([]byte, 2*KeySize)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return KeyBundle{}, newError("generate key bundle", err)
	}
	return KeyBundleFromRootSecret(buf)
}

// ToBase64 returns the base64 pair used in the crypto/keys record.
func (k KeyBundle) ToBase64() [2]string {
	return [2]string{
		base64.StdEncoding.EncodeToString(k.encKey[:]),
		base64.StdEncoding.EncodeToString(k.macKey[:]),
	}
}

// Equal reports whether both bundles hold the same keys.
func (k KeyBundle) Equal(other KeyBundle) bool {
	return hmac.Equal(k.encKey[:], other.encKey[:]) && hmac.Equal(k.macKey[:], other.macKey[:])
}

// Encrypt encrypts cleartext into an envelope with a fresh random IV.
func (k KeyBundle) Encrypt(cleartext []byte) (models.EncryptedPayload, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return models.EncryptedPayload{}, newError("encrypt", fmt.Errorf("generate iv: %w", err))
	}
	return k.encryptWithIV(cleartext, iv)
}

func (k KeyBundle) encryptWithIV(cleartext, iv []byte) (models.EncryptedPayload, error) {
	block, err := aes.NewCipher(k.encKey[:])
	if err != nil {
		return models.EncryptedPayload{}, newError("encrypt", err)
	}

	padded := pkcs7Pad(cleartext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	ctB64 := base64.StdEncoding.EncodeToString(ciphertext)
	return models.EncryptedPayload{
		IV:         base64.StdEncoding.EncodeToString(iv),
		HMAC:       k.hmacHex(ctB64),
		Ciphertext: ctB64,
	}, nil
}

// Decrypt verifies the envelope's HMAC and returns the cleartext. The HMAC
// is checked before any decryption is attempted.
func (k KeyBundle) Decrypt(env models.EncryptedPayload) ([]byte, error) {
	wantMAC, err := hex.DecodeString(env.HMAC)
	if err != nil {
		return nil, newError("decrypt", fmt.Errorf("%w: hmac is not hex", ErrMalformedCiphertext))
	}
	if !hmac.Equal(wantMAC, k.hmac(env.Ciphertext)) {
		return nil, newError("decrypt", ErrHMACMismatch)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, newError("decrypt", fmt.Errorf("%w: ciphertext is not base64", ErrMalformedCiphertext))
	}
	iv, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, newError("decrypt", fmt.Errorf("%w: bad iv", ErrMalformedCiphertext))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, newError("decrypt", fmt.Errorf("%w: ciphertext length %d", ErrMalformedCiphertext, len(ciphertext)))
	}

	block, err := aes.NewCipher(k.encKey[:])
	if err != nil {
		return nil, newError("decrypt", err)
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	out, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, newError("decrypt", err)
	}
	return out, nil
}

func (k KeyBundle) hmac(ciphertextB64 string) []byte {
	h := hmac.New(sha256.New, k.macKey[:])
	h.Write([]byte(ciphertextB64))
	return h.Sum(nil)
}

func (k KeyBundle) hmacHex(ciphertextB64 string) string {
	return hex.EncodeToString(k.hmac(ciphertextB64))
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: unpadded length %d", ErrMalformedCiphertext, len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrMalformedCiphertext)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrMalformedCiphertext)
		}
	}
	return data[:len(data)-n], nil
}
