package hasher_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/pkg/hasher"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	for _, password := range []string{"password123", "", "päßwörd ütf8", strings.Repeat("x", 200)} {
		hash, err := hasher.Hash(password)
		assert.NoError(t, err)
		assert.True(t, hasher.Verify(password, hash), "round trip failed for %q", password)
		assert.False(t, hasher.Verify(password+"nope", hash))
	}
}

func TestHashEmbedsUniqueSalt(t *testing.T) {
	h1, err := hasher.Hash("password123")
	assert.NoError(t, err)
	h2, err := hasher.Hash("password123")
	assert.NoError(t, err)

	// Same password, different salt, different hash.
	assert.NotEqual(t, h1, h2)

	parts := strings.SplitN(h1, ".", 2)
	assert.Len(t, parts, 2)
	assert.Len(t, parts[0], 128) // 64-byte key, hex encoded
	assert.Len(t, parts[1], 32)  // 16-byte salt, hex encoded
}

func TestVerifyMalformedHashFailsClosed(t *testing.T) {
	malformed := []string{
		"",
		"nodelimiter",
		".leadingdelimiter",
		"trailingdelimiter.",
		"not-hex.aabbcc",
		"aabbcc.not-hex",
		"aabb.ccdd", // key too short
	}
	for _, stored := range malformed {
		assert.False(t, hasher.Verify("password123", stored), "expected false for stored hash %q", stored)
	}
}
