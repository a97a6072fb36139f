package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeReceive     = "receive"      // entrada desde fuente externa
	MovementTypeTransferOut = "transfer_out" // salida de bodega origen en un traslado
	MovementTypeTransferIn  = "transfer_in"  // entrada en bodega destino en un traslado
	MovementTypeAdjust      = "adjust"       // corrección manual auditada
)

// StockMovement es el registro de auditoría de cada mutación del libro de stock.
// Los dos movimientos de un traslado comparten TransactionID.
type StockMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	WarehouseID   string
	BatchNumber   *string
	Type          string
	Quantity      int64  // con signo: positivo entrada, negativo salida
	Reason        string // obligatorio en ajustes; libre en el resto
	CreatedAt     time.Time
}
