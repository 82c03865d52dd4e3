package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost is the fixed bcrypt work factor for password hashing.
const hashCost = 10

// HashPassword hashes a password using bcrypt with a fixed work factor.
// The salt is generated internally and embedded in the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether a password matches the given bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
