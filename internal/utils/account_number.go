package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// AccountNumberPrefix is the institution prefix on customer-facing account
// numbers.
const AccountNumberPrefix = "ALB-"

// GenerateAccountNumber produces a candidate account number of the form
// ALB-XXXXXXXX (8 random digits). Uniqueness is the caller's concern.
func GenerateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}
	return fmt.Sprintf("%s%08d", AccountNumberPrefix, n.Int64()), nil
}
