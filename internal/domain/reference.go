package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	referenceLength   = 25
	referenceAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewTransactionReference generates the opaque per-checkout reference used to
// correlate checkout, verification and settlement. Drawn from a
// cryptographically secure source so references are unguessable and unique
// with overwhelming probability.
func NewTransactionReference() (string, error) {
	max := big.NewInt(int64(len(referenceAlphabet)))
	buf := make([]byte, referenceLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate reference: %w", err)
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return string(buf), nil
}
