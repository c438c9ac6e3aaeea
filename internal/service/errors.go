package service

import "errors"

// Registration flow specific errors used by handlers for stable mapping.
var (
	ErrInvalidOTP = errors.New("invalid_otp")
	ErrOTPExpired = errors.New("otp_expired")
)
