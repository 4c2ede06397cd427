package crypto

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-sync15/models"
)

// EncryptBso encrypts a cleartext payload into a wire record. Modified is
// left zero; the server assigns it.
func (k KeyBundle) EncryptBso(p models.Payload) (models.EncryptedBso, error) {
	cleartext, err := json.Marshal(p)
	if err != nil {
		return models.EncryptedBso{}, &Error{Op: "encrypt", ID: p.ID.String(), Err: err}
	}

	env, err := k.Encrypt(cleartext)
	if err != nil {
		return models.EncryptedBso{}, &Error{Op: "encrypt", ID: p.ID.String(), Err: err}
	}

	envJSON, err := json.Marshal(env)
	if err != nil {
		return models.EncryptedBso{}, &Error{Op: "encrypt", ID: p.ID.String(), Err: err}
	}

	return models.EncryptedBso{ID: p.ID, Payload: string(envJSON)}, nil
}

// DecryptBso verifies and decrypts a wire record. The decrypted id must
// equal the record id.
func (k KeyBundle) DecryptBso(bso models.EncryptedBso) (models.Payload, error) {
	var env models.EncryptedPayload
	if err := json.Unmarshal([]byte(bso.Payload), &env); err != nil {
		return models.Payload{}, &Error{
			Op:  "decrypt",
			ID:  bso.ID.String(),
			Err: fmt.Errorf("%w: envelope: %v", ErrMalformedCiphertext, err),
		}
	}

	cleartext, err := k.Decrypt(env)
	if err != nil {
		return models.Payload{}, &Error{Op: "decrypt", ID: bso.ID.String(), Err: err}
	}

	var p models.Payload
	if err = json.Unmarshal(cleartext, &p); err != nil {
		return models.Payload{}, &Error{
			Op:  "decrypt",
			ID:  bso.ID.String(),
			Err: fmt.Errorf("%w: cleartext: %v", ErrMalformedCiphertext, err),
		}
	}
	if p.ID != bso.ID {
		return models.Payload{}, &Error{
			Op:  "decrypt",
			ID:  bso.ID.String(),
			Err: fmt.Errorf("%w: got %q", ErrIDMismatch, p.ID),
		}
	}

	return p, nil
}
