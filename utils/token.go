package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// NewResetToken คืน (token ที่ส่งให้ user, hash ที่เก็บใน DB)
func NewResetToken() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token := hex.EncodeToString(buf)
	return token, HashResetToken(token), nil
}

func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// constant-time เทียบ hash กัน timing attack
func ResetTokenMatches(storedHash, token string) bool {
	if storedHash == "" {
		return false
	}
	h := HashResetToken(token)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(h)) == 1
}
