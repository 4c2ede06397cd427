// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/MKhiriev/go-sync15/models"
)

// CollectionKeys is the decrypted content of the crypto/keys record: a
// default bundle plus optional per-collection bundles.
type CollectionKeys struct {
	Default     KeyBundle
	Collections map[string]KeyBundle
	// Timestamp is the server modification time of crypto/keys.
	Timestamp models.ServerTimestamp
}

// NewRandomCollectionKeys generates a fresh default bundle with no
// per-collection overrides.
func NewRandomCollectionKeys() (CollectionKeys, error) {
	def, err := NewRandomKeyBundle()
	if err != nil {
		return CollectionKeys{}, err
	}
	return CollectionKeys{Default: def, Collections: map[string]KeyBundle{}}, nil
}

// KeyForCollection returns the bundle dedicated to collection, or the
// default bundle.
func (c CollectionKeys) KeyForCollection(collection string) KeyBundle {
	if kb, ok := c.Collections[collection]; ok {
		return kb
	}
	return c.Default
}

type keysRecord struct {
	ID          models.Guid          `json:"id"`
	Collection  string               `json:"collection"`
	Default     [2]string            `json:"default"`
	Collections map[string][2]string `json:"collections"`
}

// EncryptKeys produces the crypto/keys record, encrypted with root.
func EncryptKeys(root KeyBundle, keys CollectionKeys) (models.EncryptedBso, error) {
	rec := keysRecord{
		ID:          models.CryptoKeysID,
		Collection:  models.CryptoCollection,
		Default:     keys.Default.ToBase64(),
		Collections: make(map[string][2]string, len(keys.Collections)),
	}
	for name, kb := range keys.Collections {
		rec.Collections[name] = kb.ToBase64()
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return models.EncryptedBso{}, newError("encrypt keys", err)
	}

	var p models.Payload
	if err = json.Unmarshal(raw, &p); err != nil {
		return models.EncryptedBso{}, newError("encrypt keys", err)
	}

	return root.EncryptBso(p)
}

// DecryptKeys decrypts the crypto/keys record with root. A record that does
// not verify under root means the root key is wrong.
func DecryptKeys(root KeyBundle, bso models.EncryptedBso) (CollectionKeys, error) {
	p, err := root.DecryptBso(bso)
	if err != nil {
		return CollectionKeys{}, err
	}

	var rec keysRecord
	if err = p.Into(&rec); err != nil {
		return CollectionKeys{}, newError("decrypt keys", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err))
	}

	def, err := KeyBundleFromBase64(rec.Default[0], rec.Default[1])
	if err != nil {
		return CollectionKeys{}, err
	}

	keys := CollectionKeys{
		Default:     def,
		Collections: make(map[string]KeyBundle, len(rec.Collections)),
		Timestamp:   bso.Modified,
	}
	for name, pair := range rec.Collections {
		kb, err := KeyBundleFromBase64(pair[0], pair[1])
		if err != nil {
			return CollectionKeys{}, fmt.Errorf("collection %s: %w", name, err)
		}
		keys.Collections[name] = kb
	}

	return keys, nil
}

// Clone returns a copy whose Collections map can be modified independently.
func (c CollectionKeys) Clone() CollectionKeys {
	c.Collections = maps.Clone(c.Collections)
	if c.Collections == nil {
		c.Collections = map[string]KeyBundle{}
	}
	return c
}
