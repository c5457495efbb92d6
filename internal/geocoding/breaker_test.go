package geocoding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newTestBreaker(threshold int, reset time.Duration) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(threshold, reset, zap.NewNop())
	cb.now = clock.Now
	return cb, clock
}

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Minute)

	cb.RecordFailure()
	cb.RecordFailure()
	assert.True(t, cb.CanExecute())

	cb.RecordFailure()
	assert.False(t, cb.CanExecute())
	assert.Equal(t, CircuitStateOpen, cb.Status().State)
	assert.NotNil(t, cb.Status().NextRetryTime)
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb, _ := newTestBreaker(2, time.Minute)

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()

	assert.Equal(t, CircuitStateClosed, cb.State())
	assert.Equal(t, 1, cb.Status().FailureCount)
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(1, 30*time.Second)

	cb.RecordFailure()
	assert.Equal(t, CircuitStateOpen, cb.State())

	clock.now = clock.now.Add(30 * time.Second)
	assert.Equal(t, CircuitStateHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(5, 30*time.Second)

	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	clock.now = clock.now.Add(time.Minute)
	assert.Equal(t, CircuitStateHalfOpen, cb.State())

	cb.RecordFailure()
	assert.Equal(t, CircuitStateOpen, cb.State())
}
