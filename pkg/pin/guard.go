package pin

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"jumpa_withdrawal_back/models"
)

const (
	Length      = 4
	MaxAttempts = 2
)

type Verdict int

const (
	Authorized Verdict = iota
	// Malformed input is rejected without spending an attempt.
	Malformed
	Retry
	Locked
)

type Guard struct {
	maxAttempts int
}

func NewGuard() *Guard {
	return &Guard{maxAttempts: MaxAttempts}
}

// Check compares pin against the stored hash and records a failed attempt
// on the session. Callers must destroy the session on Locked.
func (g *Guard) Check(s *models.WithdrawalSession, hash, pin string) (Verdict, error) {
	if !WellFormed(pin) {
		return Malformed, models.ErrPinFormat
	}
	if hash == "" {
		return Locked, models.ErrPinNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		s.PinAttempts++
		if s.PinAttempts >= g.maxAttempts {
			s.PinAttempts = g.maxAttempts
			return Locked, models.ErrPinMismatch
		}
		return Retry, models.ErrPinMismatch
	}
	return Authorized, nil
}

func (g *Guard) Remaining(s *models.WithdrawalSession) int {
	if r := g.maxAttempts - s.PinAttempts; r > 0 {
		return r
	}
	return 0
}

func WellFormed(pin string) bool {
	if len(pin) != Length {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Hash produces the value stored in users.withdrawal_pin_hash.
func Hash(pin string) (string, error) {
	if !WellFormed(pin) {
		return "", models.ErrPinFormat
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash pin")
	}
	return string(b), nil
}
