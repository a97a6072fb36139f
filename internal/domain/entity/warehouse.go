package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// Propiedad del módulo de catálogo; el motor de stock solo lee su identidad.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
