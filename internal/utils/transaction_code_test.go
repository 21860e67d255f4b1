package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionCode(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	code, err := NewTransactionCode(now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^TXN1700000000123[0-9A-Z]{7}$`), code)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		c, err := NewTransactionCode(now)
		require.NoError(t, err)
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 1000, "codes generated in the same millisecond should still differ")
}

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := GenerateSecureRandomString(12, "ab")
	require.NoError(t, err)
	assert.Regexp(t, `^[ab]{12}$`, s)

	_, err = GenerateSecureRandomString(0, "ab")
	assert.Error(t, err)
	_, err = GenerateSecureRandomString(4, "")
	assert.Error(t, err)
}
