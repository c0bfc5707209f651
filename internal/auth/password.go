package auth

import "golang.org/x/crypto/bcrypt"

func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// The "security color" recovery secret is stored exactly like a password.

func HashColor(color string) (string, error) { return HashPassword(color) }

func VerifyColor(plain, hash string) error { return VerifyPassword(plain, hash) }
