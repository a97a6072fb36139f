package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrWarehouseNotFound   = errors.New("bodega no encontrada")
	ErrStockRecordNotFound = errors.New("registro de stock no encontrado")
	ErrSourceStockNotFound = errors.New("stock en bodega origen no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrNegativeStock       = errors.New("el resultado dejaría el stock en negativo")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia sobre el registro de stock")
)

// InsufficientStockError detalle estructurado para traslados que exceden la
// disponibilidad en la bodega origen. Envuelve ErrInsufficientStock para que
// los callers puedan seguir usando errors.Is.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NegativeStockError detalle estructurado para ajustes que dejarían la cantidad
// por debajo de cero. Envuelve ErrNegativeStock.
type NegativeStockError struct {
	Current int64
	Delta   int64
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("ajuste inválido: cantidad actual %d, delta %d", e.Current, e.Delta)
}

func (e *NegativeStockError) Unwrap() error { return ErrNegativeStock }
