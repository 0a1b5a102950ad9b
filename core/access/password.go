package access

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/VithorDosSantos/reflora/core"
)

// HashPassword returns the bcrypt hash of the given clear-text password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", core.ServerError(err)
	}
	return string(hash), nil
}

// ComparePassword checks a clear-text password against a stored bcrypt
// hash. A mismatch is a KindUnauthenticated error with the user-visible
// incorrect-password message.
func ComparePassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return core.UnauthenticatedError("incorrect password")
	}
	return nil
}
