package repository

import "context"

// GateStatus reports which abuse restriction, if any, applies to an identity.
type GateStatus int

const (
	// GateAllowed means no restriction is active.
	GateAllowed GateStatus = iota
	// GateFailureLocked means the identity exceeded the failed-verification threshold.
	GateFailureLocked
	// GateSpamLocked means the identity exceeded the OTP request threshold.
	GateSpamLocked
	// GateCooldown means an OTP was sent less than the cooldown window ago.
	GateCooldown
)

// OTPLedger tracks per-identity OTP and abuse state in a TTL-governed store.
// The identity key is the normalized (trimmed, lower-cased) email address and
// all mutable state lives in the store, never in process memory.
type OTPLedger interface {
	// CheckGate is a pure read. It evaluates failure lock, then spam lock,
	// then cooldown, and returns the most severe restriction present.
	CheckGate(ctx context.Context, email string) (GateStatus, error)

	// RecordRequest atomically increments the request counter, starting the
	// window TTL on the first increment. Once the count exceeds the request
	// threshold it sets the spam lock and returns GateSpamLocked.
	RecordRequest(ctx context.Context, email string) (GateStatus, error)

	// RecordFailure atomically increments the failed-verification counter,
	// starting the window TTL on the first increment. Once the count reaches
	// the failure threshold it sets the failure lock and returns GateFailureLocked.
	RecordFailure(ctx context.Context, email string) (GateStatus, error)

	// StoreCode writes the active OTP code, overwriting any previous code and
	// resetting its TTL.
	StoreCode(ctx context.Context, email, code string) error

	// GetCode returns the active OTP code or apperrors.ErrNotFound.
	GetCode(ctx context.Context, email string) (string, error)

	// DeleteCode removes a consumed OTP code.
	DeleteCode(ctx context.Context, email string) error

	// SetCooldown marks the identity as having just been sent an OTP.
	SetCooldown(ctx context.Context, email string) error
}
