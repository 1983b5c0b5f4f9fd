package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// sessionTokenBytes is the entropy of a session token before encoding.
const sessionTokenBytes = 32

// GenerateSessionToken returns the opaque value stored in the session
// cookie. 256 bits of crypto/rand, URL-safe base64.
func GenerateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
