package util

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps hashing around a tenth of a second on current hardware,
// slow enough to blunt offline guessing.
const bcryptCost = 12

// HashPassword derives a bcrypt hash of the given password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether password matches the stored hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
