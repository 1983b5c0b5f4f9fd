package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is bcrypt's work factor. The default keeps login latency
// acceptable for interactive use while staying resistant to offline attack.
const hashCost = bcrypt.DefaultCost

// ErrEmptyPassword is returned when an empty password is hashed.
var ErrEmptyPassword = errors.New("password cannot be empty")

// HashPassword returns a bcrypt hash of the given plaintext password.
// Length and complexity policy is enforced at the request layer, not here.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash. A nil return means match.
func VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
