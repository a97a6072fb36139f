package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

func TestInsufficientStockError_EnvuelveElCentinela(t *testing.T) {
	var err error = &domain.InsufficientStockError{Available: 60, Requested: 1000}

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "60")
	assert.Contains(t, err.Error(), "1000")

	var detail *domain.InsufficientStockError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, int64(60), detail.Available)
	assert.Equal(t, int64(1000), detail.Requested)
}

func TestNegativeStockError_EnvuelveElCentinela(t *testing.T) {
	var err error = &domain.NegativeStockError{Current: 50, Delta: -1000}

	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	var detail *domain.NegativeStockError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, int64(50), detail.Current)
	assert.Equal(t, int64(-1000), detail.Delta)
}

func TestErrores_SobrevivenAlWrapping(t *testing.T) {
	wrapped := fmt.Errorf("transferencia fallida: %w", domain.ErrConcurrencyConflict)
	assert.True(t, errors.Is(wrapped, domain.ErrConcurrencyConflict))
}
