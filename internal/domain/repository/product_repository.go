package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository puerto de lectura del catálogo de productos (DIP).
// El catálogo es un colaborador externo: el motor de stock solo lee.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
}
