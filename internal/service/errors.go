package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInterrupted is returned when the context was cancelled at a stage
	// boundary. The returned error also wraps ctx.Err().
	ErrInterrupted = errors.New("sync interrupted")

	// ErrTimestampMismatch means the fetched changeset and the collection
	// state disagree on the collection timestamp. It indicates a bug, not a
	// server condition.
	ErrTimestampMismatch = errors.New("incoming changeset timestamp does not match collection state")

	// ErrStateMachineLoop means the collection state did not settle within
	// the allowed number of transitions.
	ErrStateMachineLoop = errors.New("collection state machine did not settle")

	ErrRecordTooLarge     = errors.New("record exceeds max_record_payload_bytes")
	ErrAtomicUploadFailed = errors.New("atomic upload failed")
	ErrBatchUnsupported   = errors.New("server does not support batch uploads")

	// ErrStorageVersionUnsupported means meta/global was written by a newer
	// client with a storage format this module cannot read.
	ErrStorageVersionUnsupported = errors.New("unsupported storage version")

	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrInvalidRecord           = errors.New("invalid record")
	ErrNotFound                = errors.New("not found")
	ErrPreconditionFailed      = errors.New("collection modified since X-If-Unmodified-Since")
	ErrRequestTooLarge         = errors.New("request exceeds server limits")
	ErrBatchNotFound           = errors.New("batch not found")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)

// StoreError wraps a failure returned by a [Store] method.
type StoreError struct {
	// Op is the store method that failed, e.g. "ApplyIncoming".
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %s: %v", e.Collection, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(collection, op string, err error) error {
	return &StoreError{Op: op, Collection: collection, Err: err}
}
