package repository

import "context"

// WarehouseStockSummary cantidad agregada de un producto en una bodega
// (suma sobre todos sus lotes).
type WarehouseStockSummary struct {
	WarehouseID   string
	WarehouseName string
	Quantity      int64
}

// LowStockItem resultado crudo del repositorio para un producto cuyo stock
// total está en o por debajo de su umbral mínimo.
type LowStockItem struct {
	ProductID     string
	SKU           string
	ProductName   string
	MinStockLevel int64
	TotalQuantity int64
}

// StockAggregationRepository puerto de solo lectura para las consultas
// agregadas del libro de stock (DIP). Consumidor puro del mismo almacén que
// muta el motor; nunca cachea cantidades.
type StockAggregationRepository interface {
	// GetWarehouseBreakdown devuelve la cantidad por bodega de un producto,
	// sumando lotes. Lista vacía si el producto no tiene registros.
	GetWarehouseBreakdown(ctx context.Context, productID string) ([]WarehouseStockSummary, error)

	// GetProductsAtOrBelowMinStock devuelve los productos con umbral definido
	// (min_stock_level > 0) cuyo stock total es <= umbral, ordenados por mayor
	// déficit primero. warehouseID vacío = stock agregado de todas las bodegas.
	GetProductsAtOrBelowMinStock(ctx context.Context, warehouseID string) ([]LowStockItem, error)
}
