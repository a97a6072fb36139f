package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (propiedad del módulo de catálogo).
// El motor de stock solo lo lee: identidad para validar operaciones y MinStockLevel
// como umbral de alerta de stock bajo.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	Description   string
	UnitMeasure   string          // unidad de medida (unidad, caja, kg, ...)
	MinStockLevel int64           // umbral de reorden; 0 = sin alerta
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // costo promedio ponderado
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
