// Package randx provides utility functions for generating random
// secrets and wiping sensitive data from memory.
package randx

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes drawn from
// crypto/rand before hex encoding, so the final string length is twice the
// size. The database passphrase is generated with size 32, i.e. a 256-bit
// secret rendered as 64 hex characters.
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MakeRandByteArray returns size bytes drawn from crypto/rand.
// It panics if the system random source fails, which is not recoverable.
func MakeRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to remove plaintext passwords and answers from memory once
// they have been hashed.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
