package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre el libro de stock:
// listado, total por producto, alertas de stock bajo y el diario de
// movimientos. Consumidor puro del mismo almacén que muta el motor.
type StockQueryUseCase struct {
	stockRepo repository.StockRecordRepository
	movRepo   repository.StockMovementRepository
	aggRepo   repository.StockAggregationRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	aggRepo repository.StockAggregationRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movRepo: movRepo, aggRepo: aggRepo}
}

// GetStockRecord obtiene un registro por su clave (producto, bodega, lote).
// Lectura sin bloqueo; clave inexistente devuelve ErrStockRecordNotFound.
func (uc *StockQueryUseCase) GetStockRecord(productID, warehouseID string, batchNumber *string) (*dto.StockRecordDTO, error) {
	if productID == "" || warehouseID == "" {
		return nil, fmt.Errorf("%w: product_id y warehouse_id son obligatorios", domain.ErrInvalidInput)
	}
	record, err := uc.stockRepo.FindByKey(productID, warehouseID, batchNumber)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrStockRecordNotFound
	}
	result := toStockRecordDTO(record)
	return &result, nil
}

// ListAll lista registros de stock, opcionalmente filtrados por producto y/o
// bodega, ordenados por actualización más reciente primero.
func (uc *StockQueryUseCase) ListAll(ctx context.Context, productID, warehouseID string, page dto.PageRequest) ([]dto.StockRecordDTO, error) {
	page.DefaultPage()
	records, err := uc.stockRepo.List(ctx, repository.StockFilter{
		ProductID:   productID,
		WarehouseID: warehouseID,
	}, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	list := make([]dto.StockRecordDTO, 0, len(records))
	for _, r := range records {
		list = append(list, toStockRecordDTO(r))
	}
	return list, nil
}

// GetTotalStock suma la cantidad de un producto sobre todas las bodegas y
// lotes. Un producto sin registros devuelve total cero, no error.
func (uc *StockQueryUseCase) GetTotalStock(ctx context.Context, productID string) (*dto.TotalStockDTO, error) {
	breakdown, err := uc.aggRepo.GetWarehouseBreakdown(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := &dto.TotalStockDTO{
		ProductID: productID,
		Breakdown: make([]dto.WarehouseStockDTO, 0, len(breakdown)),
	}
	for _, b := range breakdown {
		result.TotalQuantity += b.Quantity
		result.Breakdown = append(result.Breakdown, dto.WarehouseStockDTO{
			WarehouseID:   b.WarehouseID,
			WarehouseName: b.WarehouseName,
			Quantity:      b.Quantity,
		})
	}
	return result, nil
}

// GetLowStock devuelve los productos con umbral definido cuyo stock total es
// menor o igual a su min_stock_level, cada uno con el desglose por bodega
// para decidir dónde reponer. warehouseID vacío = stock global; con filtro,
// el desglose se limita a esa bodega para que su suma coincida con el total.
func (uc *StockQueryUseCase) GetLowStock(ctx context.Context, warehouseID string) ([]dto.LowStockEntryDTO, error) {
	items, err := uc.aggRepo.GetProductsAtOrBelowMinStock(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LowStockEntryDTO, 0, len(items))
	for _, item := range items {
		breakdown, err := uc.aggRepo.GetWarehouseBreakdown(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		whStock := make([]dto.WarehouseStockDTO, 0, len(breakdown))
		for _, b := range breakdown {
			if warehouseID != "" && b.WarehouseID != warehouseID {
				continue
			}
			whStock = append(whStock, dto.WarehouseStockDTO{
				WarehouseID:   b.WarehouseID,
				WarehouseName: b.WarehouseName,
				Quantity:      b.Quantity,
			})
		}
		entries = append(entries, dto.LowStockEntryDTO{
			ProductID:     item.ProductID,
			SKU:           item.SKU,
			ProductName:   item.ProductName,
			TotalStock:    item.TotalQuantity,
			MinStockLevel: item.MinStockLevel,
			Breakdown:     whStock,
		})
	}
	return entries, nil
}

// ListMovements lista el diario de movimientos de un producto o de una bodega,
// opcionalmente acotado por rango de fechas, del más reciente al más antiguo.
// Se exige exactamente un eje de consulta; con ambos, manda el producto.
func (uc *StockQueryUseCase) ListMovements(productID, warehouseID string, from, to *time.Time, page dto.PageRequest) ([]dto.StockMovementDTO, error) {
	page.DefaultPage()

	var (
		movements []*entity.StockMovement
		err       error
	)
	switch {
	case productID != "":
		movements, err = uc.movRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	case warehouseID != "":
		movements, err = uc.movRepo.ListByWarehouse(warehouseID, from, to, page.Limit, page.Offset)
	default:
		return nil, fmt.Errorf("%w: se requiere product_id o warehouse_id", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	list := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		list = append(list, dto.StockMovementDTO{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			BatchNumber:   m.BatchNumber,
			Type:          m.Type,
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			CreatedAt:     m.CreatedAt,
		})
	}
	return list, nil
}
