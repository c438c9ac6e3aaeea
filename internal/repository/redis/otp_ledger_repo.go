package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

// LedgerConfig holds the TTLs and thresholds of the abuse ledger. Zero values
// fall back to the defaults below.
type LedgerConfig struct {
	// CodeTTL is the lifetime of an issued OTP code.
	CodeTTL time.Duration
	// Cooldown is the minimum delay between two OTP sends.
	Cooldown time.Duration
	// RequestWindow is the sliding-window approximation for request counting.
	// The TTL is set on the first increment only and is not refreshed.
	RequestWindow time.Duration
	// SpamLockTTL is how long the spam lock stays once triggered.
	SpamLockTTL time.Duration
	// FailureWindow is the counting window for failed verifications.
	FailureWindow time.Duration
	// FailureLockTTL is how long the failure lock stays once triggered.
	FailureLockTTL time.Duration
	// MaxRequests is the number of OTP requests allowed per window.
	// The request that brings the count above this sets the spam lock.
	MaxRequests int
	// MaxFailures is the number of failed verifications allowed per window.
	// Reaching this count sets the failure lock.
	MaxFailures int
}

// DefaultLedgerConfig returns the production thresholds.
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		CodeTTL:        5 * time.Minute,
		Cooldown:       1 * time.Minute,
		RequestWindow:  1 * time.Hour,
		SpamLockTTL:    1 * time.Hour,
		FailureWindow:  15 * time.Minute,
		FailureLockTTL: 15 * time.Minute,
		MaxRequests:    5,
		MaxFailures:    5,
	}
}

func (c LedgerConfig) withDefaults() LedgerConfig {
	def := DefaultLedgerConfig()
	if c.CodeTTL <= 0 {
		c.CodeTTL = def.CodeTTL
	}
	if c.Cooldown <= 0 {
		c.Cooldown = def.Cooldown
	}
	if c.RequestWindow <= 0 {
		c.RequestWindow = def.RequestWindow
	}
	if c.SpamLockTTL <= 0 {
		c.SpamLockTTL = def.SpamLockTTL
	}
	if c.FailureWindow <= 0 {
		c.FailureWindow = def.FailureWindow
	}
	if c.FailureLockTTL <= 0 {
		c.FailureLockTTL = def.FailureLockTTL
	}
	if c.MaxRequests <= 0 {
		c.MaxRequests = def.MaxRequests
	}
	if c.MaxFailures <= 0 {
		c.MaxFailures = def.MaxFailures
	}
	return c
}

// OTPLedgerRepo implements repository.OTPLedger on Redis.
type OTPLedgerRepo struct {
	client redis.UniversalClient
	cfg    LedgerConfig
}

// NewOTPLedgerRepo creates the ledger repository.
func NewOTPLedgerRepo(client redis.UniversalClient, cfg LedgerConfig) (*OTPLedgerRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for OTPLedgerRepo")
	}
	return &OTPLedgerRepo{client: client, cfg: cfg.withDefaults()}, nil
}

// Key namespace, all scoped per identity.
func codeKey(email string) string         { return "otp:" + email }
func cooldownKey(email string) string     { return "otp_cooldown:" + email }
func spamLockKey(email string) string     { return "otp_spam_lock:" + email }
func failureLockKey(email string) string  { return "otp_lock:" + email }
func requestCountKey(email string) string { return "otp_request_count:" + email }
func failureCountKey(email string) string { return "otp_failed_attempts:" + email }

// CheckGate evaluates the gates in severity order: failure lock, spam lock,
// cooldown. The order is fixed so that the most severe restriction wins.
func (r *OTPLedgerRepo) CheckGate(ctx context.Context, email string) (repository.GateStatus, error) {
	for _, gate := range []struct {
		key    string
		status repository.GateStatus
	}{
		{failureLockKey(email), repository.GateFailureLocked},
		{spamLockKey(email), repository.GateSpamLocked},
		{cooldownKey(email), repository.GateCooldown},
	} {
		exists, err := r.client.Exists(ctx, gate.key).Result()
		if err != nil {
			return repository.GateAllowed, fmt.Errorf("ledger gate check: %w", err)
		}
		if exists > 0 {
			return gate.status, nil
		}
	}
	return repository.GateAllowed, nil
}

// RecordRequest counts an OTP request against the hourly window.
//
// The INCR is the atomicity point: two concurrent requests cannot observe the
// same count, so exactly one caller sees each value and the lock transition
// cannot be lost. Setting the lock twice is idempotent.
func (r *OTPLedgerRepo) RecordRequest(ctx context.Context, email string) (repository.GateStatus, error) {
	count, err := r.client.Incr(ctx, requestCountKey(email)).Result()
	if err != nil {
		return repository.GateAllowed, fmt.Errorf("ledger request counter: %w", err)
	}
	if count == 1 {
		// Window TTL is established once; later increments do not refresh it.
		if err := r.client.Expire(ctx, requestCountKey(email), r.cfg.RequestWindow).Err(); err != nil {
			return repository.GateAllowed, fmt.Errorf("ledger request window: %w", err)
		}
	}
	if count > int64(r.cfg.MaxRequests) {
		if err := r.client.Set(ctx, spamLockKey(email), "true", r.cfg.SpamLockTTL).Err(); err != nil {
			return repository.GateAllowed, fmt.Errorf("ledger spam lock: %w", err)
		}
		return repository.GateSpamLocked, nil
	}
	return repository.GateAllowed, nil
}

// RecordFailure counts a failed OTP verification against the failure window.
func (r *OTPLedgerRepo) RecordFailure(ctx context.Context, email string) (repository.GateStatus, error) {
	count, err := r.client.Incr(ctx, failureCountKey(email)).Result()
	if err != nil {
		return repository.GateAllowed, fmt.Errorf("ledger failure counter: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, failureCountKey(email), r.cfg.FailureWindow).Err(); err != nil {
			return repository.GateAllowed, fmt.Errorf("ledger failure window: %w", err)
		}
	}
	if count >= int64(r.cfg.MaxFailures) {
		if err := r.client.Set(ctx, failureLockKey(email), "true", r.cfg.FailureLockTTL).Err(); err != nil {
			return repository.GateAllowed, fmt.Errorf("ledger failure lock: %w", err)
		}
		return repository.GateFailureLocked, nil
	}
	return repository.GateAllowed, nil
}

// StoreCode writes the OTP code, overwriting any prior code for the identity.
func (r *OTPLedgerRepo) StoreCode(ctx context.Context, email, code string) error {
	if err := r.client.Set(ctx, codeKey(email), code, r.cfg.CodeTTL).Err(); err != nil {
		return fmt.Errorf("ledger store code: %w", err)
	}
	return nil
}

// GetCode returns the active OTP code for the identity.
func (r *OTPLedgerRepo) GetCode(ctx context.Context, email string) (string, error) {
	val, err := r.client.Get(ctx, codeKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("ledger get code: %w", err)
	}
	return val, nil
}

// DeleteCode removes the OTP code after successful verification.
func (r *OTPLedgerRepo) DeleteCode(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, codeKey(email)).Err(); err != nil {
		return fmt.Errorf("ledger delete code: %w", err)
	}
	return nil
}

// SetCooldown starts the post-send cooldown window.
func (r *OTPLedgerRepo) SetCooldown(ctx context.Context, email string) error {
	if err := r.client.Set(ctx, cooldownKey(email), "true", r.cfg.Cooldown).Err(); err != nil {
		return fmt.Errorf("ledger cooldown: %w", err)
	}
	return nil
}
