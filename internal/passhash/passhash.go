// Package passhash hashes and verifies user secrets (passwords and security
// answers) with Argon2id. Hashes are stored as self-describing encoded
// strings carrying the parameters and salt, so they stay verifiable if the
// defaults ever change:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<base64 salt>$<base64 hash>
//
// Every call to Hash uses a fresh random salt, so two hashes of the same
// input differ. Callers must never compare encoded hashes for equality;
// always use Verify.
package passhash

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/randx"
)

const (
	memory      = 64 * 1024
	iterations  = 3
	parallelism = 4
	saltLength  = 16
	keyLength   = 32
)

type params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// Hash derives an Argon2id hash of plaintext with a fresh random salt and
// returns it in encoded form.
func Hash(plaintext string) (string, error) {
	salt := randx.MakeRandByteArray(saltLength)

	hash := argon2.IDKey([]byte(plaintext), salt, iterations, memory, parallelism, keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// MustHash is Hash for static initialization paths (e.g. the login decoy);
// it panics on failure.
func MustHash(plaintext string) string {
	h, err := Hash(plaintext)
	if err != nil {
		panic(err)
	}
	return h
}

// Verify recomputes the hash of candidate using the parameters and salt
// embedded in encoded and compares in constant time.
//
// Outcomes:
//   - (true, nil): candidate matches.
//   - (false, nil): well-formed hash, wrong secret.
//   - (false, common.ErrMalformedHash): encoded could not be parsed. This is
//     a data-integrity failure and must not be reported as a wrong password.
func Verify(encoded, candidate string) (bool, error) {
	p, salt, hash, err := decode(encoded)
	if err != nil {
		return false, err
	}

	candidateHash := argon2.IDKey([]byte(candidate), salt, p.iterations, p.memory, p.parallelism, uint32(len(hash)))

	if subtle.ConstantTimeCompare(hash, candidateHash) == 1 {
		return true, nil
	}
	return false, nil
}

func decode(encoded string) (params, []byte, []byte, error) {
	var p params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("%w: unexpected format", common.ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("%w: bad version", common.ErrMalformedHash)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", common.ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("%w: bad parameters", common.ErrMalformedHash)
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return p, nil, nil, fmt.Errorf("%w: zero parameter", common.ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: bad salt encoding", common.ErrMalformedHash)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return p, nil, nil, fmt.Errorf("%w: bad hash encoding", common.ErrMalformedHash)
	}

	return p, salt, hash, nil
}
