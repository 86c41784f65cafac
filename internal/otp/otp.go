package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeLogin  Purpose = "login"
)

// Code is a pending one-time password. Only the bcrypt hash is kept.
type Code struct {
	Mobile    string
	Purpose   Purpose
	Hash      string
	Attempts  int
	ExpiresAt time.Time
}

func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
