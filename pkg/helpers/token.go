package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// NewToken returns n cryptographically random bytes as an opaque URL-safe
// string, used as session ids.
func NewToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
