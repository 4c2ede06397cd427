package models

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Guid identifies a record within a collection. Ids minted by this module
// are 12 URL-safe base64 characters, the format other clients expect, but
// any non-empty string received from the server is accepted as-is.
type Guid string

// NewGuid returns a fresh random record id.
func NewGuid() Guid {
	u := uuid.New()
	return Guid(base64.RawURLEncoding.EncodeToString(u[:9]))
}

// String implements fmt.Stringer.
func (g Guid) String() string {
	return string(g)
}

// IsValid reports whether g can be used as a record id on the wire.
func (g Guid) IsValid() bool {
	return g != "" && len(g) <= 64
}

// GuidsToStrings converts ids for use in query parameters and logs.
func GuidsToStrings(ids []Guid) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
