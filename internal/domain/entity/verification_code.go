package entity

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// VerificationCodeLength is the number of digits in a pickup code
const VerificationCodeLength = 6

var verificationCodeSpace = big.NewInt(1_000_000)

// GenerateVerificationCode draws a uniform 6-digit code from the given entropy source.
// A nil reader falls back to crypto/rand.
func GenerateVerificationCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}

	n, err := rand.Int(r, verificationCodeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	return fmt.Sprintf("%0*d", VerificationCodeLength, n.Int64()), nil
}

// NormalizeCode trims surrounding whitespace from a submitted code
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

// IsWellFormedCode reports whether the code is exactly six ASCII digits
func IsWellFormedCode(code string) bool {
	if len(code) != VerificationCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// CodesMatch compares a submitted code with the stored one after trimming
func CodesMatch(submitted, stored string) bool {
	submitted = NormalizeCode(submitted)
	if len(submitted) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
