package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of salts produced by GenerateSalt.
const SaltSize = 16

// Deriver turns a user passphrase into the account root bundle with
// Argon2id. The parameters are kept on the struct so they can be tuned per
// deployment target.
type Deriver struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// NewDeriver returns a Deriver with the OWASP (2024) Argon2id parameters:
// 1 iteration, 64 MiB, 4 threads.
func NewDeriver() Deriver {
	return Deriver{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// GenerateSalt reads SaltSize random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveRootBundle derives a 64-byte secret from passphrase and salt and
// splits it into a root bundle. Same inputs always give the same bundle.
func (d Deriver) DeriveRootBundle(passphrase string, salt []byte) (KeyBundle, error) {
	if passphrase == "" {
		return KeyBundle{}, newError("derive root bundle", fmt.Errorf("%w: empty passphrase", ErrInvalidKey))
	}
	if len(salt) < 8 {
		return KeyBundle{}, newError("derive root bundle", fmt.Errorf("%w: salt too short", ErrInvalidKey))
	}

	secret := argon2.IDKey([]byte(passphrase), salt, d.Time, d.Memory, d.Threads, 2*KeySize)
	return KeyBundleFromRootSecret(secret)
}
