package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPayloadMissingID is returned when a cleartext record has no "id" field.
var ErrPayloadMissingID = errors.New("payload has no id")

// Payload is the decrypted body of a record: an id, an optional tombstone
// flag, and the domain fields the owning store interprets. Data holds the
// remaining JSON object members untouched.
type Payload struct {
	ID      Guid
	Deleted bool
	Data    map[string]json.RawMessage
}

// NewPayload builds a payload for id from v, which must marshal to a JSON
// object.
func NewPayload(id Guid, v any) (Payload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Payload{}, fmt.Errorf("marshal payload data: %w", err)
	}

	data := make(map[string]json.RawMessage)
	if err = json.Unmarshal(raw, &data); err != nil {
		return Payload{}, fmt.Errorf("payload data must be a JSON object: %w", err)
	}
	delete(data, "id")
	delete(data, "deleted")

	return Payload{ID: id, Data: data}, nil
}

// NewTombstone returns the payload announcing that id was deleted.
func NewTombstone(id Guid) Payload {
	return Payload{ID: id, Deleted: true}
}

// Into decodes the domain fields into v.
func (p Payload) Into(v any) error {
	raw, err := json.Marshal(p.Data)
	if err != nil {
		return fmt.Errorf("marshal payload data: %w", err)
	}
	if err = json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload data: %w", err)
	}
	return nil
}

// MarshalJSON flattens ID, Deleted and Data into a single JSON object.
func (p Payload) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(p.Data)+2)
	for k, v := range p.Data {
		obj[k] = v
	}

	id, err := json.Marshal(p.ID)
	if err != nil {
		return nil, err
	}
	obj["id"] = id
	if p.Deleted {
		obj["deleted"] = json.RawMessage("true")
	} else {
		delete(obj, "deleted")
	}

	return json.Marshal(obj)
}

// UnmarshalJSON splits a JSON object into ID, Deleted and Data.
func (p *Payload) UnmarshalJSON(b []byte) error {
	obj := make(map[string]json.RawMessage)
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	rawID, ok := obj["id"]
	if !ok {
		return ErrPayloadMissingID
	}
	var id Guid
	if err := json.Unmarshal(rawID, &id); err != nil {
		return fmt.Errorf("decode payload id: %w", err)
	}
	if id == "" {
		return ErrPayloadMissingID
	}

	var deleted bool
	if rawDeleted, ok := obj["deleted"]; ok {
		if err := json.Unmarshal(rawDeleted, &deleted); err != nil {
			return fmt.Errorf("decode payload deleted flag: %w", err)
		}
	}

	delete(obj, "id")
	delete(obj, "deleted")

	p.ID = id
	p.Deleted = deleted
	p.Data = obj
	return nil
}
