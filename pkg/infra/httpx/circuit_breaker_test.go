package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestNewCircuitBreaker(t *testing.T) {
	breaker := NewCircuitBreaker("cleantalk", 30*time.Second, 3)

	wrapper, ok := breaker.(*circuitBreakerWrapper)
	assert.True(t, ok)
	assert.Equal(t, "cleantalk", wrapper.breaker.Name())
	assert.Equal(t, gobreaker.StateClosed, wrapper.breaker.State())
}

func TestCircuitBreaker_Execute_WrapsError(t *testing.T) {
	breaker := NewCircuitBreaker("wrap-test", 30*time.Second, 3)
	testError := errors.New("connection reset")

	err := breaker.Execute(func() error {
		return testError
	})

	assert.ErrorIs(t, err, testError)
	assert.Contains(t, err.Error(), "breaker (wrap-test)")
	assert.False(t, IsOpen(err))
}

func TestCircuitBreaker_Execute_RecoversPanic(t *testing.T) {
	breaker := NewCircuitBreaker("panic-test", 30*time.Second, 3)

	err := breaker.Execute(func() error {
		panic("boom")
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered: boom")
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	breaker := NewCircuitBreaker("open-test", 30*time.Second, 2)
	wrapper, _ := breaker.(*circuitBreakerWrapper) //nolint:errcheck

	for i := 0; i < 2; i++ {
		_ = breaker.Execute(func() error { return errors.New("failure") }) //nolint:errcheck
	}
	assert.Equal(t, gobreaker.StateOpen, wrapper.breaker.State())

	called := false
	err := breaker.Execute(func() error {
		called = true
		return nil
	})
	assert.False(t, called)
	assert.True(t, IsOpen(err))
}

func TestCircuitBreaker_RecoversAfterTimeout(t *testing.T) {
	breaker := NewCircuitBreaker("recovery-test", 50*time.Millisecond, 1)
	wrapper, _ := breaker.(*circuitBreakerWrapper) //nolint:errcheck

	_ = breaker.Execute(func() error { return errors.New("failure") }) //nolint:errcheck
	assert.Equal(t, gobreaker.StateOpen, wrapper.breaker.State())

	time.Sleep(100 * time.Millisecond)

	assert.NoError(t, breaker.Execute(func() error { return nil }))
	assert.Equal(t, gobreaker.StateClosed, wrapper.breaker.State())
}
