package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID         = errors.New("invalid id")
	ErrEmptyPayload      = errors.New("empty payload")
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrInvalidTTL        = errors.New("ttl must be positive")
	ErrInvalidSortIndex  = errors.New("sortindex out of range")
	ErrInvalidCollection = errors.New("invalid collection name")
)
