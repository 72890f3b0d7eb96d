package platform

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const tokenLength = 16

func NewID() string {
	return uuid.New().String()
}

// NewVerificationToken returns a random lowercase-alphanumeric token used to
// build the per-tenant verification CNAME target. Lowercase only, since DNS
// names compare case-insensitively.
func NewVerificationToken() string {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = tokenAlphabet[b[i]%byte(len(tokenAlphabet))]
	}
	return string(b)
}
