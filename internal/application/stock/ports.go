package stock

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// todo lo que fn escribe se confirma o se revierte en bloque.
//
// Un deadlock o fallo de serialización se reporta como
// domain.ErrConcurrencyConflict para que el motor pueda reintentar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
