// Package hasher derives and verifies salted scrypt password hashes.
//
// A stored hash is "<derived key hex>.<salt hex>": a 64-byte scrypt output
// followed by the 16 random salt bytes used to derive it. The parameters are
// fixed; changing them invalidates every stored hash, which is a migration
// concern outside this package.
package hasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLength = 16
	keyLength  = 64
	delimiter  = "."

	// scrypt cost parameters.
	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

// Hash derives a salted hash of the password, embedding a freshly generated
// random salt in the returned string.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(key) + delimiter + hex.EncodeToString(salt), nil
}

// Verify reports whether the password matches the stored hash. The derived
// keys are compared in constant time. A malformed stored hash (missing
// delimiter, bad hex, wrong key length) fails closed: the result is false,
// never an error.
func Verify(password, stored string) bool {
	parts := strings.SplitN(stored, delimiter, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	storedKey, err := hex.DecodeString(parts[0])
	if err != nil || len(storedKey) != keyLength {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(storedKey, key) == 1
}
