package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker down")

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Hour)

	for i := 0; i < 3; i++ {
		err := cb.Call(func() error { return errBroker })
		require.ErrorIs(t, err, errBroker)
	}
	assert.Equal(t, StateOpen, cb.State())

	// While open, calls fail fast without invoking fn.
	called := false
	err := cb.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreakerRecovers(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errBroker }))
	assert.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	// First call after the reset timeout probes the broker.
	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errBroker }))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Call(func() error { return errBroker }))
	assert.Equal(t, StateOpen, cb.State())
}

func TestNilProducerPublishIsSafe(t *testing.T) {
	var p *Producer
	assert.NotPanics(t, func() {
		p.Publish(OrderEvent{Type: EventOrderCreated})
	})
	assert.NoError(t, p.Close())
}
