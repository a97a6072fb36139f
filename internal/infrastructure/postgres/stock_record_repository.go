package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL
// (usable con pool o tx). La tabla stock_records tiene CHECK (quantity >= 0)
// y unique NULLS NOT DISTINCT sobre (product_id, warehouse_id, batch_number):
// un lote ausente (NULL) es una identidad de clave propia.
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// FindByKey obtiene el registro de la clave (producto, bodega, lote) o nil si no existe.
func (r *StockRecordRepo) FindByKey(productID, warehouseID string, batchNumber *string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, batch_number, quantity, expiry_date, updated_at
		FROM stock_records
		WHERE product_id = $1 AND warehouse_id = $2 AND batch_number IS NOT DISTINCT FROM $3`
	return r.scanOne(query, productID, warehouseID, batchNumber)
}

// FindByKeyForUpdate igual que FindByKey pero bloquea la fila (SELECT FOR UPDATE)
// por la duración de la transacción en curso.
func (r *StockRecordRepo) FindByKeyForUpdate(productID, warehouseID string, batchNumber *string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, batch_number, quantity, expiry_date, updated_at
		FROM stock_records
		WHERE product_id = $1 AND warehouse_id = $2 AND batch_number IS NOT DISTINCT FROM $3
		FOR UPDATE`
	return r.scanOne(query, productID, warehouseID, batchNumber)
}

func (r *StockRecordRepo) scanOne(query string, args ...any) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.BatchNumber, &s.Quantity, &s.ExpiryDate, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

// Create inserta un registro nuevo. Una violación de la clave única significa
// que otra transacción creó la misma clave en paralelo; se reporta como
// conflicto de concurrencia para que el motor reintente y tome la ruta de update.
func (r *StockRecordRepo) Create(record *entity.StockRecord) error {
	if record.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		INSERT INTO stock_records (id, product_id, warehouse_id, batch_number, quantity, expiry_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.WarehouseID, record.BatchNumber,
		record.Quantity, record.ExpiryDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad absoluta de un registro. El motor es quien
// hace cumplir el invariante; aquí solo queda el respaldo defensivo (rechazo
// de negativos y mapeo del CHECK de la tabla).
func (r *StockRecordRepo) UpdateQuantity(id string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	query := `UPDATE stock_records SET quantity = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("update stock record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStockRecordNotFound
	}
	return nil
}

// List devuelve registros ordenados por updated_at descendente, con filtros
// opcionales por producto y/o bodega.
func (r *StockRecordRepo) List(ctx context.Context, filter repository.StockFilter, limit, offset int) ([]*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, batch_number, quantity, expiry_date, updated_at
		FROM stock_records WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.BatchNumber,
			&s.Quantity, &s.ExpiryDate, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
