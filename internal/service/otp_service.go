package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"

	"github.com/google/uuid"

	"github.com/yourusername/auth-api/internal/domain/repository"
)

// OTP codes are drawn uniformly from the closed interval [otpMin, otpMax],
// so every 4-digit value is possible.
const (
	otpMin = 1000
	otpMax = 9999
)

// OTPIssuer generates and delivers one-time passcodes.
type OTPIssuer interface {
	Issue(ctx context.Context, email, name string) error
}

// OTPService implements OTPIssuer on the abuse ledger and a mail transport.
type OTPService struct {
	ledger       repository.OTPLedger
	emailService EmailService
}

// NewOTPService creates the OTP issuer.
func NewOTPService(ledger repository.OTPLedger, emailService EmailService) (*OTPService, error) {
	if ledger == nil {
		return nil, fmt.Errorf("otp ledger is required")
	}
	if emailService == nil {
		return nil, fmt.Errorf("email service is required")
	}
	return &OTPService{ledger: ledger, emailService: emailService}, nil
}

// Issue generates a code, stores it (overwriting any prior code and resetting
// its TTL), attempts delivery, and starts the cooldown window.
//
// A delivery failure is logged and swallowed: the cooldown is set regardless
// of the transport outcome so a flaky provider cannot be used to bypass the
// re-issue bound.
func (s *OTPService) Issue(ctx context.Context, email, name string) error {
	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.ledger.StoreCode(ctx, email, code); err != nil {
		return err
	}

	if err := s.emailService.SendOTP(ctx, email, name, code, uuid.NewString()); err != nil {
		log.Printf("[OTPService] failed to deliver OTP to %s: %v", email, err)
	}

	return s.ledger.SetCooldown(ctx, email)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+otpMin), nil
}
