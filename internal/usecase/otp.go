package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const otpTTL = 10 * time.Minute

// OTPGenerator produces the 6-digit verification codes and their expiry.
type OTPGenerator interface {
	Generate() (string, error)
	ExpiryFrom(now time.Time) time.Time
}

type otpGenerator struct{}

func NewOTPGenerator() OTPGenerator { return otpGenerator{} }

func (otpGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (otpGenerator) ExpiryFrom(now time.Time) time.Time { return now.Add(otpTTL) }
