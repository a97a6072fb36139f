package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// WarehouseRepository puerto de lectura del catálogo de bodegas (DIP).
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
}
