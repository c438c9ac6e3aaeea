package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

const testEmail = "new@example.com"

func newTestLedger(t *testing.T) (*OTPLedgerRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo, err := NewOTPLedgerRepo(client, DefaultLedgerConfig())
	require.NoError(t, err)
	return repo, mr
}

func TestCheckGate_NoState(t *testing.T) {
	repo, _ := newTestLedger(t)

	status, err := repo.CheckGate(context.Background(), testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateAllowed, status)
}

func TestCheckGate_SeverityOrder(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	// Cooldown alone.
	require.NoError(t, mr.Set("otp_cooldown:"+testEmail, "true"))
	status, err := repo.CheckGate(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateCooldown, status)

	// Spam lock outranks cooldown.
	require.NoError(t, mr.Set("otp_spam_lock:"+testEmail, "true"))
	status, err = repo.CheckGate(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateSpamLocked, status)

	// Failure lock outranks everything.
	require.NoError(t, mr.Set("otp_lock:"+testEmail, "true"))
	status, err = repo.CheckGate(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateFailureLocked, status)
}

func TestRecordRequest_SpamLockOnSixth(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		status, err := repo.RecordRequest(ctx, testEmail)
		require.NoError(t, err)
		assert.Equal(t, repository.GateAllowed, status, "request %d should be allowed", i)
	}

	status, err := repo.RecordRequest(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateSpamLocked, status)

	assert.True(t, mr.Exists("otp_spam_lock:"+testEmail))
	assert.Equal(t, time.Hour, mr.TTL("otp_spam_lock:"+testEmail))
}

func TestRecordRequest_WindowTTLSetOnce(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	_, err := repo.RecordRequest(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL("otp_request_count:"+testEmail))

	mr.FastForward(30 * time.Minute)

	// Later increments must not refresh the window TTL.
	_, err = repo.RecordRequest(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, mr.TTL("otp_request_count:"+testEmail))
}

func TestRecordRequest_CounterExpiresWithWindow(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.RecordRequest(ctx, testEmail)
		require.NoError(t, err)
	}

	mr.FastForward(time.Hour + time.Second)

	status, err := repo.RecordRequest(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateAllowed, status)
}

func TestRecordRequest_SpamLockOutlivesCounterReset(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := repo.RecordRequest(ctx, testEmail)
		require.NoError(t, err)
	}
	require.True(t, mr.Exists("otp_spam_lock:"+testEmail))

	// Drop the counter; the lock must still gate.
	mr.Del("otp_request_count:" + testEmail)

	status, err := repo.CheckGate(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateSpamLocked, status)
}

func TestRecordFailure_LockOnFifth(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		status, err := repo.RecordFailure(ctx, testEmail)
		require.NoError(t, err)
		assert.Equal(t, repository.GateAllowed, status, "failure %d should not lock", i)
	}

	status, err := repo.RecordFailure(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateFailureLocked, status)

	assert.True(t, mr.Exists("otp_lock:"+testEmail))
	assert.Equal(t, 15*time.Minute, mr.TTL("otp_lock:"+testEmail))
	assert.Equal(t, 15*time.Minute, mr.TTL("otp_failed_attempts:"+testEmail))
}

func TestStoreCode_OverwritesAndResetsTTL(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, repo.StoreCode(ctx, testEmail, "1234"))
	assert.Equal(t, 5*time.Minute, mr.TTL("otp:"+testEmail))

	mr.FastForward(2 * time.Minute)

	require.NoError(t, repo.StoreCode(ctx, testEmail, "5678"))
	assert.Equal(t, 5*time.Minute, mr.TTL("otp:"+testEmail))

	code, err := repo.GetCode(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, "5678", code)
}

func TestGetCode_NotFound(t *testing.T) {
	repo, _ := newTestLedger(t)

	_, err := repo.GetCode(context.Background(), testEmail)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteCode(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, repo.StoreCode(ctx, testEmail, "1234"))
	require.NoError(t, repo.DeleteCode(ctx, testEmail))
	assert.False(t, mr.Exists("otp:"+testEmail))
}

func TestSetCooldown_ExpiresAfterWindow(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, repo.SetCooldown(ctx, testEmail))
	assert.Equal(t, time.Minute, mr.TTL("otp_cooldown:"+testEmail))

	status, err := repo.CheckGate(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateCooldown, status)

	mr.FastForward(61 * time.Second)

	status, err = repo.CheckGate(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateAllowed, status)
}

func TestFailureLock_IndependentOfCooldown(t *testing.T) {
	repo, mr := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, repo.SetCooldown(ctx, testEmail))
	for i := 0; i < 5; i++ {
		_, err := repo.RecordFailure(ctx, testEmail)
		require.NoError(t, err)
	}

	status, err := repo.CheckGate(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateFailureLocked, status)

	// The failure lock keeps gating after the cooldown is gone.
	mr.FastForward(2 * time.Minute)

	status, err = repo.CheckGate(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, repository.GateFailureLocked, status)
}

func TestLedgerConfig_Defaults(t *testing.T) {
	cfg := LedgerConfig{}.withDefaults()
	assert.Equal(t, 5*time.Minute, cfg.CodeTTL)
	assert.Equal(t, time.Minute, cfg.Cooldown)
	assert.Equal(t, time.Hour, cfg.RequestWindow)
	assert.Equal(t, time.Hour, cfg.SpamLockTTL)
	assert.Equal(t, 15*time.Minute, cfg.FailureWindow)
	assert.Equal(t, 15*time.Minute, cfg.FailureLockTTL)
	assert.Equal(t, 5, cfg.MaxRequests)
	assert.Equal(t, 5, cfg.MaxFailures)
}
