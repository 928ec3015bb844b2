package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor (10 rounds).
const PasswordCost = bcrypt.DefaultCost

// dummyHash is compared against when no account matches, so an unknown
// identifier costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("heart-dummy-password"), PasswordCost)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// An empty hash is checked against a dummy hash and always fails.
func CompareHashAndPassword(hash string, plain string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
