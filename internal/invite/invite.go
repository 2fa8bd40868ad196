// Package invite generates invite codes users share to be credited as
// referrers.
package invite

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the fixed length of an invite code.
const CodeLength = 6

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCode returns a random invite code of CodeLength uppercase letters and
// digits. Uniqueness across users is enforced by the user store; callers
// retry on collision.
func NewCode() (string, error) {
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
