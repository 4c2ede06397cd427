package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync15/models"
)

// Field names accepted by [BsoValidator.Validate] for records.
const (
	FieldID        = "id"
	FieldPayload   = "payload"
	FieldTTL       = "ttl"
	FieldSortIndex = "sortindex"
)

const (
	// MaxCollectionNameLength bounds collection names in URLs.
	MaxCollectionNameLength = 32

	maxSortIndex = 999_999_999
)

// Collection is a collection name to be validated.
type Collection string

type BsoValidator struct {
	maxPayloadBytes int
}

// NewBsoValidator returns a validator for uploaded records and collection
// names. Payloads longer than maxPayloadBytes are rejected; zero disables
// the check.
func NewBsoValidator(maxPayloadBytes int) Validator {
	return &BsoValidator{maxPayloadBytes: maxPayloadBytes}
}

func (v *BsoValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.EncryptedBso:
		return v.validateBso(ctx, value, fields...)
	case *models.EncryptedBso:
		return v.validateBso(ctx, *value, fields...)

	case Collection:
		return validateCollection(value)

	default:
		return ErrUnsupportedType
	}
}

func (v *BsoValidator) validateBso(_ context.Context, bso models.EncryptedBso, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldPayload, FieldTTL, FieldSortIndex}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !bso.ID.IsValid() {
				return ErrInvalidID
			}
		case FieldPayload:
			if bso.Payload == "" {
				return ErrEmptyPayload
			}
			if v.maxPayloadBytes > 0 && len(bso.Payload) > v.maxPayloadBytes {
				return fmt.Errorf("%w: exceeds %d bytes", ErrPayloadTooLarge, v.maxPayloadBytes)
			}
		case FieldTTL:
			if bso.TTL != nil && *bso.TTL <= 0 {
				return ErrInvalidTTL
			}
		case FieldSortIndex:
			if bso.SortIndex != nil && (*bso.SortIndex > maxSortIndex || *bso.SortIndex < -maxSortIndex) {
				return ErrInvalidSortIndex
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateCollection(collection Collection) error {
	if collection == "" || len(collection) > MaxCollectionNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	for _, r := range collection {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
		}
	}
	return nil
}
