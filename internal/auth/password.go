// Package auth provides password hashing and JWT issuance/verification.
package auth

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor used when hashing passwords.
const HashCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password with a random salt. The same
// input produces a different hash on each call.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt hash.
// A mismatch returns false; it never returns an error value to the caller,
// matching the login path's treatment of bad credentials as a normal outcome.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
