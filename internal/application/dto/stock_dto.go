package dto

import "time"

// ReceiveStockRequest body para POST /api/stock/receive.
type ReceiveStockRequest struct {
	ProductID   string     `json:"product_id"`
	WarehouseID string     `json:"warehouse_id"`
	Quantity    int64      `json:"quantity"`
	BatchNumber *string    `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
}

// TransferStockRequest body para POST /api/stock/transfer.
type TransferStockRequest struct {
	ProductID       string  `json:"product_id"`
	FromWarehouseID string  `json:"from_warehouse_id"`
	ToWarehouseID   string  `json:"to_warehouse_id"`
	Quantity        int64   `json:"quantity"`
	BatchNumber     *string `json:"batch_number,omitempty"`
}

// AdjustStockRequest body para POST /api/stock/adjust.
type AdjustStockRequest struct {
	ProductID   string  `json:"product_id"`
	WarehouseID string  `json:"warehouse_id"`
	Delta       int64   `json:"delta"`
	Reason      string  `json:"reason"`
	BatchNumber *string `json:"batch_number,omitempty"`
}

// StockRecordDTO representación de un registro de stock para el caller.
type StockRecordDTO struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	WarehouseID string     `json:"warehouse_id"`
	BatchNumber *string    `json:"batch_number,omitempty"`
	Quantity    int64      `json:"quantity"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ReceiveStockResultDTO registro resultante de una entrada, con los datos de
// producto y bodega ya unidos para conveniencia del caller.
type ReceiveStockResultDTO struct {
	StockRecordDTO
	ProductSKU    string `json:"product_sku"`
	ProductName   string `json:"product_name"`
	UnitMeasure   string `json:"unit_measure"`
	WarehouseName string `json:"warehouse_name"`
}

// TransferSummaryDTO resumen de un traslado entre bodegas.
type TransferSummaryDTO struct {
	TransactionID     string  `json:"transaction_id"`
	ProductID         string  `json:"product_id"`
	FromWarehouseID   string  `json:"from_warehouse_id"`
	FromWarehouseName string  `json:"from_warehouse_name"`
	ToWarehouseID     string  `json:"to_warehouse_id"`
	ToWarehouseName   string  `json:"to_warehouse_name"`
	Quantity          int64   `json:"quantity"`
	BatchNumber       *string `json:"batch_number,omitempty"`
}

// StockMovementDTO asiento del diario de movimientos. Los dos asientos de un
// traslado comparten transaction_id.
type StockMovementDTO struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	WarehouseID   string    `json:"warehouse_id"`
	BatchNumber   *string   `json:"batch_number,omitempty"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// WarehouseStockDTO cantidad de un producto en una bodega (suma de lotes).
type WarehouseStockDTO struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int64  `json:"quantity"`
}

// TotalStockDTO stock total de un producto con desglose por bodega.
type TotalStockDTO struct {
	ProductID     string              `json:"product_id"`
	TotalQuantity int64               `json:"total_quantity"`
	Breakdown     []WarehouseStockDTO `json:"breakdown"`
}

// LowStockEntryDTO producto cuyo stock total está en o bajo su umbral mínimo.
// El desglose por bodega permite decidir dónde reponer.
type LowStockEntryDTO struct {
	ProductID     string              `json:"product_id"`
	SKU           string              `json:"sku"`
	ProductName   string              `json:"product_name"`
	TotalStock    int64               `json:"total_stock"`
	MinStockLevel int64               `json:"min_stock_level"`
	Breakdown     []WarehouseStockDTO `json:"breakdown"`
}
