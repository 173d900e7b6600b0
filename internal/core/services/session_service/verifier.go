package session_service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier compares a submitted secret with the stored one.
// Swapping the implementation does not touch any caller.
type CredentialVerifier interface {
	Verify(stored, submitted string) bool
}

// PlaintextVerifier is the roster's current contract: stored secrets are plain text.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// BcryptVerifier expects stored secrets to be bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, submitted string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
}

func HashSecret(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(b), err
}

func NewVerifier(mode string) CredentialVerifier {
	if mode == "bcrypt" {
		return BcryptVerifier{}
	}
	return PlaintextVerifier{}
}
