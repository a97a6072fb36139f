package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockAggregationRepository = (*StockAggregationRepo)(nil)

// StockAggregationRepo consultas agregadas del libro de stock sobre PostgreSQL.
// Solo lectura; lee el mismo estado que muta el motor, sin caché.
type StockAggregationRepo struct {
	q Querier
}

// NewStockAggregationRepository construye el adaptador de agregación.
func NewStockAggregationRepository(q Querier) *StockAggregationRepo {
	return &StockAggregationRepo{q: q}
}

// GetWarehouseBreakdown devuelve la cantidad por bodega de un producto,
// sumando todos sus lotes. Sin registros devuelve lista vacía.
func (r *StockAggregationRepo) GetWarehouseBreakdown(ctx context.Context, productID string) ([]repository.WarehouseStockSummary, error) {
	query := `
		SELECT s.warehouse_id, w.name, COALESCE(SUM(s.quantity), 0) AS quantity
		FROM stock_records s
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE s.product_id = $1
		GROUP BY s.warehouse_id, w.name
		ORDER BY quantity DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("get warehouse breakdown: %w", err)
	}
	defer rows.Close()

	var list []repository.WarehouseStockSummary
	for rows.Next() {
		var s repository.WarehouseStockSummary
		if err := rows.Scan(&s.WarehouseID, &s.WarehouseName, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan warehouse breakdown: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetProductsAtOrBelowMinStock devuelve los productos con umbral definido
// (min_stock_level > 0) cuyo stock total es <= umbral. Si warehouseID no es
// vacío, el total se restringe a esa bodega; si es vacío se agrega sobre
// todas. Ordena por déficit descendente (mayor quiebre primero).
func (r *StockAggregationRepo) GetProductsAtOrBelowMinStock(ctx context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	var (
		query string
		args  []any
	)

	if warehouseID != "" {
		query = `
			SELECT
				p.id,
				p.sku,
				p.name,
				p.min_stock_level,
				COALESCE(SUM(s.quantity), 0) AS total_quantity
			FROM products p
			LEFT JOIN stock_records s ON s.product_id = p.id AND s.warehouse_id = $1
			WHERE p.min_stock_level > 0
			GROUP BY p.id, p.sku, p.name, p.min_stock_level
			HAVING COALESCE(SUM(s.quantity), 0) <= p.min_stock_level
			ORDER BY (p.min_stock_level - COALESCE(SUM(s.quantity), 0)) DESC`
		args = []any{warehouseID}
	} else {
		query = `
			SELECT
				p.id,
				p.sku,
				p.name,
				p.min_stock_level,
				COALESCE(SUM(s.quantity), 0) AS total_quantity
			FROM products p
			LEFT JOIN stock_records s ON s.product_id = p.id
			WHERE p.min_stock_level > 0
			GROUP BY p.id, p.sku, p.name, p.min_stock_level
			HAVING COALESCE(SUM(s.quantity), 0) <= p.min_stock_level
			ORDER BY (p.min_stock_level - COALESCE(SUM(s.quantity), 0)) DESC`
		args = nil
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get products at or below min stock: %w", err)
	}
	defer rows.Close()

	var items []repository.LowStockItem
	for rows.Next() {
		var item repository.LowStockItem
		if err := rows.Scan(
			&item.ProductID, &item.SKU, &item.ProductName,
			&item.MinStockLevel, &item.TotalQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
