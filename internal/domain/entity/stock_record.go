package entity

import "time"

// StockRecord es la unidad de verdad del libro de stock: la cantidad de un
// producto en una bodega y lote. La tupla (ProductID, WarehouseID, BatchNumber)
// es clave única; BatchNumber nil es una identidad de lote válida y comparable,
// no un comodín. Quantity nunca puede ser negativa.
//
// Un registro nunca se elimina, ni siquiera en cero: conserva la identidad del
// lote y mantiene consultable el historial de movimientos.
type StockRecord struct {
	ID          string
	ProductID   string
	WarehouseID string
	BatchNumber *string    // nil = sin lote (identidad propia)
	Quantity    int64      // invariante: >= 0
	ExpiryDate  *time.Time // acompaña al lote; el motor no la interpreta
	UpdatedAt   time.Time
}
