package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// memAggRepo fake de agregación: calcula totales sobre un conjunto fijo de
// registros y productos, como lo haría la consulta SQL.
type memAggRepo struct {
	records  []*entity.StockRecord
	products []*entity.Product
	names    map[string]string // warehouseID -> nombre
}

func (r *memAggRepo) GetWarehouseBreakdown(_ context.Context, productID string) ([]repository.WarehouseStockSummary, error) {
	byWh := map[string]int64{}
	for _, rec := range r.records {
		if rec.ProductID == productID {
			byWh[rec.WarehouseID] += rec.Quantity
		}
	}
	var list []repository.WarehouseStockSummary
	for whID, qty := range byWh {
		list = append(list, repository.WarehouseStockSummary{
			WarehouseID: whID, WarehouseName: r.names[whID], Quantity: qty,
		})
	}
	return list, nil
}

func (r *memAggRepo) GetProductsAtOrBelowMinStock(_ context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	var items []repository.LowStockItem
	for _, p := range r.products {
		if p.MinStockLevel <= 0 {
			continue
		}
		var total int64
		for _, rec := range r.records {
			if rec.ProductID != p.ID {
				continue
			}
			if warehouseID != "" && rec.WarehouseID != warehouseID {
				continue
			}
			total += rec.Quantity
		}
		if total <= p.MinStockLevel {
			items = append(items, repository.LowStockItem{
				ProductID: p.ID, SKU: p.SKU, ProductName: p.Name,
				MinStockLevel: p.MinStockLevel, TotalQuantity: total,
			})
		}
	}
	return items, nil
}

func newQueryFixture() (*stock.StockQueryUseCase, *memStore) {
	store := newMemStore()
	agg := &memAggRepo{
		names: map[string]string{"W1": "Bodega Central", "W2": "Bodega Norte"},
		products: []*entity.Product{
			{ID: "P1", SKU: "SKU-001", Name: "Tornillo 3/8", MinStockLevel: 5},
			{ID: "P2", SKU: "SKU-002", Name: "Tuerca 3/8", MinStockLevel: 10},
			{ID: "P3", SKU: "SKU-003", Name: "Arandela", MinStockLevel: 0},
		},
	}
	agg.records = []*entity.StockRecord{
		{ID: "1", ProductID: "P1", WarehouseID: "W1", Quantity: 2},
		{ID: "2", ProductID: "P1", WarehouseID: "W2", Quantity: 1},
		{ID: "3", ProductID: "P2", WarehouseID: "W1", Quantity: 40},
	}
	for _, rec := range agg.records {
		store.records[rec.ID] = rec
	}
	store.movements = []*entity.StockMovement{
		{ID: "M1", TransactionID: "TX1", ProductID: "P1", WarehouseID: "W1", Type: entity.MovementTypeReceive, Quantity: 2},
		{ID: "M2", TransactionID: "TX2", ProductID: "P1", WarehouseID: "W2", Type: entity.MovementTypeReceive, Quantity: 1},
		{ID: "M3", TransactionID: "TX3", ProductID: "P2", WarehouseID: "W1", Type: entity.MovementTypeAdjust, Quantity: -3, Reason: "conteo físico"},
	}
	return stock.NewStockQueryUseCase(&memStockRepo{store}, &memMovementRepo{store}, agg), store
}

func TestGetTotalStock_SumaSobreBodegas(t *testing.T) {
	uc, _ := newQueryFixture()

	total, err := uc.GetTotalStock(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, int64(3), total.TotalQuantity)
	assert.Len(t, total.Breakdown, 2)
}

func TestGetTotalStock_SinRegistrosDevuelveCero(t *testing.T) {
	uc, _ := newQueryFixture()

	total, err := uc.GetTotalStock(context.Background(), "P-DESCONOCIDO")
	require.NoError(t, err, "un producto sin registros no es un error")
	assert.Equal(t, int64(0), total.TotalQuantity)
	assert.Empty(t, total.Breakdown)
}

func TestGetLowStock_DetectaUmbral(t *testing.T) {
	uc, _ := newQueryFixture()

	entries, err := uc.GetLowStock(context.Background(), "")
	require.NoError(t, err)

	// P1: total 3 <= umbral 5 -> alerta. P2: 40 > 10 -> no. P3: sin umbral -> no.
	require.Len(t, entries, 1)
	assert.Equal(t, "P1", entries[0].ProductID)
	assert.Equal(t, int64(3), entries[0].TotalStock)
	assert.Equal(t, int64(5), entries[0].MinStockLevel)
	assert.Len(t, entries[0].Breakdown, 2, "cada alerta lleva el desglose por bodega")
}

func TestGetLowStock_FiltraPorBodega(t *testing.T) {
	uc, _ := newQueryFixture()

	entries, err := uc.GetLowStock(context.Background(), "W2")
	require.NoError(t, err)

	// En W2: P1 tiene 1 (<= 5) y P2 tiene 0 (<= 10): ambos en alerta
	require.Len(t, entries, 2)

	// Con filtro de bodega, el desglose queda acotado a esa bodega y su suma
	// coincide con el total reportado
	for _, e := range entries {
		var suma int64
		for _, b := range e.Breakdown {
			assert.Equal(t, "W2", b.WarehouseID)
			suma += b.Quantity
		}
		assert.Equal(t, e.TotalStock, suma, "producto %s: total y desglose inconsistentes", e.ProductID)
	}
}

func TestGetStockRecord_PorClave(t *testing.T) {
	uc, _ := newQueryFixture()

	record, err := uc.GetStockRecord("P1", "W2", nil)
	require.NoError(t, err)
	assert.Equal(t, "2", record.ID)
	assert.Equal(t, int64(1), record.Quantity)
}

func TestGetStockRecord_ClaveInexistente(t *testing.T) {
	uc, _ := newQueryFixture()

	_, err := uc.GetStockRecord("P1", "W2", strPtr("LOTE-999"))
	assert.ErrorIs(t, err, domain.ErrStockRecordNotFound, "clave ausente no es un error de infraestructura")

	_, err = uc.GetStockRecord("P-DESCONOCIDO", "W1", nil)
	assert.ErrorIs(t, err, domain.ErrStockRecordNotFound)
}

func TestListMovements_PorProducto(t *testing.T) {
	uc, _ := newQueryFixture()

	movs, err := uc.ListMovements("P1", "", nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, "P1", m.ProductID)
	}
}

func TestListMovements_PorBodega(t *testing.T) {
	uc, _ := newQueryFixture()

	movs, err := uc.ListMovements("", "W1", nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "conteo físico", movs[1].Reason)
}

func TestListMovements_SinEjeDeConsulta(t *testing.T) {
	uc, _ := newQueryFixture()

	_, err := uc.ListMovements("", "", nil, nil, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListAll_FiltraYDevuelveRegistros(t *testing.T) {
	uc, _ := newQueryFixture()
	ctx := context.Background()

	todos, err := uc.ListAll(ctx, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	porProducto, err := uc.ListAll(ctx, "P1", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, porProducto, 2)

	porBodega, err := uc.ListAll(ctx, "P1", "W2", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, porBodega, 1)
	assert.Equal(t, int64(1), porBodega[0].Quantity)
}
