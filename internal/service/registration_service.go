package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
	"github.com/yourusername/auth-api/pkg/auth"
)

// Messages returned for abuse-ledger rejections.
const (
	msgAccountLocked = "Account locked due to too many failed attempts, please try again after 15 minutes"
	msgSpamLocked    = "Too many OTP requests, please try again after 1 hour"
	msgCooldown      = "OTP recently sent, please wait 1 minute before requesting again"
)

// RegistrationService orchestrates OTP-based registration: it validates the
// payload, consults the abuse ledger, triggers OTP issuance, and materializes
// the user record once the code is verified.
type RegistrationService struct {
	userRepo   repository.UserRepository
	ledger     repository.OTPLedger
	otpIssuer  OTPIssuer
	jwtService *auth.JWTService
}

// NewRegistrationService creates the registration orchestrator.
func NewRegistrationService(
	userRepo repository.UserRepository,
	ledger repository.OTPLedger,
	otpIssuer OTPIssuer,
	jwtService *auth.JWTService,
) (*RegistrationService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("otp ledger is required")
	}
	if otpIssuer == nil {
		return nil, fmt.Errorf("otp issuer is required")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required")
	}
	return &RegistrationService{
		userRepo:   userRepo,
		ledger:     ledger,
		otpIssuer:  otpIssuer,
		jwtService: jwtService,
	}, nil
}

// RequestOTP runs the registration workflow up to OTP delivery:
// validate input, reject duplicate accounts, pass the ledger gates, count the
// request, and issue the code. No user record is created at this stage.
func (s *RegistrationService) RequestOTP(ctx context.Context, name, email, password string) error {
	input, err := ValidateRegistrationInput(name, email, password)
	if err != nil {
		return err
	}

	if err := s.ensureUserDoesNotExist(input.Email); err != nil {
		return err
	}

	status, err := s.ledger.CheckGate(ctx, input.Email)
	if err != nil {
		return err
	}
	switch status {
	case repository.GateFailureLocked:
		return apperrors.NewRateLimit(msgAccountLocked)
	case repository.GateSpamLocked:
		return apperrors.NewRateLimit(msgSpamLocked)
	case repository.GateCooldown:
		return apperrors.NewRateLimit(msgCooldown)
	}

	status, err = s.ledger.RecordRequest(ctx, input.Email)
	if err != nil {
		return err
	}
	if status == repository.GateSpamLocked {
		return apperrors.NewRateLimit(msgSpamLocked)
	}

	return s.otpIssuer.Issue(ctx, input.Email, input.Name)
}

// VerifyOTP checks the submitted code against the active one. A mismatch is
// counted as a verification failure; a match consumes the code, creates the
// user record and returns it with a signed access token.
func (s *RegistrationService) VerifyOTP(ctx context.Context, name, email, password, code string) (*entity.User, string, error) {
	input, err := ValidateRegistrationInput(name, email, password)
	if err != nil {
		return nil, "", err
	}

	if err := s.ensureUserDoesNotExist(input.Email); err != nil {
		return nil, "", err
	}

	status, err := s.ledger.CheckGate(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	// Only the failure lock gates verification; cooldown and spam lock bound
	// issuance, not code entry.
	if status == repository.GateFailureLocked {
		return nil, "", apperrors.NewRateLimit(msgAccountLocked)
	}

	stored, err := s.ledger.GetCode(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", ErrOTPExpired
		}
		return nil, "", err
	}

	if stored != code {
		failStatus, failErr := s.ledger.RecordFailure(ctx, input.Email)
		if failErr != nil {
			return nil, "", failErr
		}
		if failStatus == repository.GateFailureLocked {
			return nil, "", apperrors.NewRateLimit(msgAccountLocked)
		}
		return nil, "", ErrInvalidOTP
	}

	if err := s.ledger.DeleteCode(ctx, input.Email); err != nil {
		return nil, "", err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *RegistrationService) ensureUserDoesNotExist(email string) error {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return apperrors.NewValidation("User already exists with this email")
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return err
}
