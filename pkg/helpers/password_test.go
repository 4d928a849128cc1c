package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesPHCString(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"), hash)
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "correct horse battery stapl"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "same password"))
	assert.True(t, VerifyPassword(h2, "same password"))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	} {
		assert.False(t, VerifyPassword(encoded, "whatever"), encoded)
	}
}

func TestDecodeHashRoundTripsParameters(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	memory, timeCost, threads, salt, key, err := decodeHash(hash)
	require.NoError(t, err)
	assert.Equal(t, uint32(19456), memory)
	assert.Equal(t, uint32(2), timeCost)
	assert.Equal(t, uint8(1), threads)
	assert.Len(t, salt, argonSaltLen)
	assert.Len(t, key, int(argonKeyLen))
}
