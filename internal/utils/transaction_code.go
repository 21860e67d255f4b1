package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

const (
	transactionCodePrefix = "TXN"
	codeSuffixLength      = 7
	base36Alphabet        = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateSecureRandomString returns n characters drawn uniformly from alphabet
// using a cryptographically secure source.
func GenerateSecureRandomString(n int, alphabet string) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	if alphabet == "" {
		return "", fmt.Errorf("alphabet must not be empty")
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// NewTransactionCode returns a code of the form TXN<unix millis><7 base36 chars>.
func NewTransactionCode(now time.Time) (string, error) {
	suffix, err := GenerateSecureRandomString(codeSuffixLength, base36Alphabet)
	if err != nil {
		return "", err
	}
	return transactionCodePrefix + strconv.FormatInt(now.UnixMilli(), 10) + suffix, nil
}
