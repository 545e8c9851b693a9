package config

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// DefaultPasswordSalt is used when PASSWORD_SALT is unset.
const DefaultPasswordSalt = "default_salt"

// PasswordConfig hashes passwords as hex(SHA-256(password + salt)).
type PasswordConfig struct {
	Salt string
}

// NewPasswordConfig returns a hasher for salt, or the default salt when empty.
func NewPasswordConfig(salt string) *PasswordConfig {
	if salt == "" {
		salt = DefaultPasswordSalt
	}
	return &PasswordConfig{Salt: salt}
}

// HashPassword returns the salted digest of pw.
func (c *PasswordConfig) HashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw + c.Salt))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(c.HashPassword(pw)), []byte(storedHash)) == 1
}
