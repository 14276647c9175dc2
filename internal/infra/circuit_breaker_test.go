package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("inventario caído")

func cbRapido() *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      20 * time.Millisecond,
	})
}

func TestCircuitBreaker_SeAbreTrasFallasConsecutivas(t *testing.T) {
	cb := cbRapido()

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errUpstream })
		require.ErrorIs(t, err, errUpstream)
	}
	assert.Equal(t, CBOpen, cb.State())

	// abierto: rechaza sin invocar la función
	llamada := false
	err := cb.Execute(func() error { llamada = true; return nil })
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, llamada)
}

func TestCircuitBreaker_ExitoReiniciaElConteo(t *testing.T) {
	cb := cbRapido()

	cb.Execute(func() error { return errUpstream })
	cb.Execute(func() error { return errUpstream })
	require.NoError(t, cb.Execute(func() error { return nil }))

	// dos fallas más no alcanzan el umbral reiniciado
	cb.Execute(func() error { return errUpstream })
	cb.Execute(func() error { return errUpstream })
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_MedioAbiertoCierraConExitos(t *testing.T) {
	cb := cbRapido()

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return errUpstream })
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SondaFallidaReabre(t *testing.T) {
	cb := cbRapido()

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return errUpstream })
	}
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	err := cb.Execute(func() error { return errUpstream })
	require.ErrorIs(t, err, errUpstream)
	assert.Equal(t, CBOpen, cb.State())
}
