package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// HashPassword returns the bcrypt hash of a plaintext password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
