package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockFilter filtro opcional para listar registros de stock.
type StockFilter struct {
	ProductID   string
	WarehouseID string
}

// StockRecordRepository define el puerto de persistencia del libro de stock (DIP).
// Las escrituras solo deben usarse dentro de una transacción del TxRunner: el
// motor serializa el read-modify-write con FindByKeyForUpdate (SELECT FOR UPDATE).
type StockRecordRepository interface {
	// FindByKey devuelve el registro de la clave (producto, bodega, lote) o nil si no existe.
	// batchNumber nil se compara como identidad "sin lote", no como comodín.
	FindByKey(productID, warehouseID string, batchNumber *string) (*entity.StockRecord, error)
	// FindByKeyForUpdate igual que FindByKey pero bloquea la fila (SELECT FOR UPDATE).
	FindByKeyForUpdate(productID, warehouseID string, batchNumber *string) (*entity.StockRecord, error)
	// Create inserta un registro nuevo. Una violación de clave única (carrera de
	// creación concurrente) se reporta como domain.ErrConcurrencyConflict.
	Create(record *entity.StockRecord) error
	// UpdateQuantity fija la cantidad absoluta de un registro existente.
	// Rechaza cantidades negativas como respaldo defensivo del invariante.
	UpdateQuantity(id string, quantity int64) error
	// List devuelve registros ordenados por updated_at descendente.
	List(ctx context.Context, filter StockFilter, limit, offset int) ([]*entity.StockRecord, error)
}
