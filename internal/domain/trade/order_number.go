package trade

import (
	"crypto/rand"

	"github.com/wims/backend/internal/domain/shared"
)

const orderNumberLength = 8

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderNumber returns a random 8 character uppercase
// alphanumeric order number. Uniqueness is enforced by the caller
// against the order repository.
func GenerateOrderNumber() (string, error) {
	buf := make([]byte, orderNumberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", shared.NewDomainError("NUMBER_GENERATION", "Could not generate order number")
	}

	for i := range buf {
		buf[i] = orderNumberAlphabet[int(buf[i])%len(orderNumberAlphabet)]
	}
	return string(buf), nil
}
