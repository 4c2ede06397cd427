// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrHMACMismatch means the record was tampered with or encrypted with a
	// different key than the one used to verify it.
	ErrHMACMismatch = errors.New("hmac verification failed")

	// ErrMalformedCiphertext means the envelope could not be decoded or the
	// decrypted bytes are not validly padded.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrInvalidKey means key material has the wrong length or encoding.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrIDMismatch means the decrypted record claims a different id than
	// the envelope it arrived in.
	ErrIDMismatch = errors.New("record id does not match envelope id")
)

// Error reports a failure to encrypt, decrypt or verify a record. A sync
// cycle that hits one must abort: it indicates key skew with the server or
// corrupted data.
type Error struct {
	// Op is the operation that failed ("decrypt", "encrypt", ...).
	Op string
	// ID is the affected record, if known.
	ID  string
	Err error
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("crypto %s (record %s): %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("crypto %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}
