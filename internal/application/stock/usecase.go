package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const defaultTxMaxRetries = 3

// StockOperationsUseCase implementa las mutaciones del libro de stock
// (Receive, Transfer, Adjust) de forma transaccional, con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback.
//
// Los errores de regla de negocio (no encontrado, stock insuficiente,
// resultado negativo) son terminales y se reportan al caller; solo los
// conflictos de concurrencia se reintentan, un número acotado de veces.
type StockOperationsUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	maxRetries    int
}

// NewStockOperationsUseCase construye el caso de uso. maxRetries <= 0 usa el
// valor por defecto.
func NewStockOperationsUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	maxRetries int,
) *StockOperationsUseCase {
	if maxRetries <= 0 {
		maxRetries = defaultTxMaxRetries
	}
	return &StockOperationsUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		maxRetries:    maxRetries,
	}
}

// ReceiveInput entrada para registrar una recepción de inventario.
type ReceiveInput struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	BatchNumber *string
	ExpiryDate  *time.Time
}

// TransferInput entrada para un traslado entre bodegas.
type TransferInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	BatchNumber     *string
}

// AdjustInput entrada para un ajuste manual auditado.
type AdjustInput struct {
	ProductID   string
	WarehouseID string
	Delta       int64
	Reason      string
	BatchNumber *string
}

// Receive registra una entrada de inventario: crea el registro de la clave
// (producto, bodega, lote) si no existe, o suma la cantidad si ya existe.
// La fecha de vencimiento solo se fija al crear; nunca se sobreescribe.
func (uc *StockOperationsUseCase) Receive(ctx context.Context, input ReceiveInput) (*dto.ReceiveStockResultDTO, error) {
	if input.ProductID == "" || input.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// Validar existencia en el catálogo antes de cualquier mutación
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound
	}

	var result *entity.StockRecord
	err = uc.runWithRetry(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := time.Now()
		// Bloquea la fila para serializar el read-modify-write
		record, err := stockRepo.FindByKeyForUpdate(input.ProductID, input.WarehouseID, input.BatchNumber)
		if err != nil {
			return err
		}
		if record == nil {
			record = &entity.StockRecord{
				ID:          uuid.New().String(),
				ProductID:   input.ProductID,
				WarehouseID: input.WarehouseID,
				BatchNumber: input.BatchNumber,
				Quantity:    input.Quantity,
				ExpiryDate:  input.ExpiryDate,
				UpdatedAt:   now,
			}
			if err := stockRepo.Create(record); err != nil {
				return err
			}
		} else {
			record.Quantity += input.Quantity
			record.UpdatedAt = now
			if err := stockRepo.UpdateQuantity(record.ID, record.Quantity); err != nil {
				return err
			}
		}
		result = record

		return movRepo.Create(&entity.StockMovement{
			TransactionID: uuid.New().String(),
			ProductID:     input.ProductID,
			WarehouseID:   input.WarehouseID,
			BatchNumber:   input.BatchNumber,
			Type:          entity.MovementTypeReceive,
			Quantity:      input.Quantity,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.ReceiveStockResultDTO{
		StockRecordDTO: toStockRecordDTO(result),
		ProductSKU:     product.SKU,
		ProductName:    product.Name,
		UnitMeasure:    product.UnitMeasure,
		WarehouseName:  warehouse.Name,
	}, nil
}

// Transfer traslada cantidad de una bodega a otra como unidad atómica: el
// decremento en origen y el incremento en destino se confirman o se revierten
// juntos. La cantidad total del par (producto, lote) se conserva.
func (uc *StockOperationsUseCase) Transfer(ctx context.Context, input TransferInput) (*dto.TransferSummaryDTO, error) {
	if input.ProductID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.FromWarehouseID == input.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	fromWh, err := uc.warehouseRepo.GetByID(input.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	if fromWh == nil {
		return nil, domain.ErrWarehouseNotFound
	}
	toWh, err := uc.warehouseRepo.GetByID(input.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if toWh == nil {
		return nil, domain.ErrWarehouseNotFound
	}

	txID := uuid.New().String()
	err = uc.runWithRetry(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := time.Now()
		// Bloquea la fila en bodega origen
		source, err := stockRepo.FindByKeyForUpdate(input.ProductID, input.FromWarehouseID, input.BatchNumber)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrSourceStockNotFound
		}
		if source.Quantity < input.Quantity {
			return &domain.InsufficientStockError{Available: source.Quantity, Requested: input.Quantity}
		}

		source.Quantity -= input.Quantity
		if err := stockRepo.UpdateQuantity(source.ID, source.Quantity); err != nil {
			return err
		}

		// Destino: crear con la fecha de vencimiento copiada del origen, o sumar
		dest, err := stockRepo.FindByKeyForUpdate(input.ProductID, input.ToWarehouseID, input.BatchNumber)
		if err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.StockRecord{
				ID:          uuid.New().String(),
				ProductID:   input.ProductID,
				WarehouseID: input.ToWarehouseID,
				BatchNumber: input.BatchNumber,
				Quantity:    input.Quantity,
				ExpiryDate:  source.ExpiryDate,
				UpdatedAt:   now,
			}
			if err := stockRepo.Create(dest); err != nil {
				return err
			}
		} else {
			dest.Quantity += input.Quantity
			if err := stockRepo.UpdateQuantity(dest.ID, dest.Quantity); err != nil {
				return err
			}
		}

		// Dos movimientos con el mismo transaction_id: salida en origen, entrada en destino
		if err := movRepo.Create(&entity.StockMovement{
			TransactionID: txID,
			ProductID:     input.ProductID,
			WarehouseID:   input.FromWarehouseID,
			BatchNumber:   input.BatchNumber,
			Type:          entity.MovementTypeTransferOut,
			Quantity:      -input.Quantity,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			TransactionID: txID,
			ProductID:     input.ProductID,
			WarehouseID:   input.ToWarehouseID,
			BatchNumber:   input.BatchNumber,
			Type:          entity.MovementTypeTransferIn,
			Quantity:      input.Quantity,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransferSummaryDTO{
		TransactionID:     txID,
		ProductID:         input.ProductID,
		FromWarehouseID:   fromWh.ID,
		FromWarehouseName: fromWh.Name,
		ToWarehouseID:     toWh.ID,
		ToWarehouseName:   toWh.Name,
		Quantity:          input.Quantity,
		BatchNumber:       input.BatchNumber,
	}, nil
}

// Adjust aplica una corrección con signo sobre un registro existente (conteo,
// daño, baja). Nunca crea registros y rechaza cualquier resultado negativo
// sin tocar el estado. Reason es obligatorio: queda en el diario de movimientos.
func (uc *StockOperationsUseCase) Adjust(ctx context.Context, input AdjustInput) (*dto.StockRecordDTO, error) {
	if input.ProductID == "" || input.WarehouseID == "" || input.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Delta == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var result *entity.StockRecord
	err := uc.runWithRetry(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := time.Now()
		record, err := stockRepo.FindByKeyForUpdate(input.ProductID, input.WarehouseID, input.BatchNumber)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrStockRecordNotFound
		}
		newQuantity := record.Quantity + input.Delta
		if newQuantity < 0 {
			return &domain.NegativeStockError{Current: record.Quantity, Delta: input.Delta}
		}
		if err := stockRepo.UpdateQuantity(record.ID, newQuantity); err != nil {
			return err
		}
		record.Quantity = newQuantity
		record.UpdatedAt = now
		result = record

		return movRepo.Create(&entity.StockMovement{
			TransactionID: uuid.New().String(),
			ProductID:     input.ProductID,
			WarehouseID:   input.WarehouseID,
			BatchNumber:   input.BatchNumber,
			Type:          entity.MovementTypeAdjust,
			Quantity:      input.Delta,
			Reason:        input.Reason,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	recordDTO := toStockRecordDTO(result)
	return &recordDTO, nil
}

// runWithRetry ejecuta fn en transacción y reintenta solo ante
// domain.ErrConcurrencyConflict (deadlock, fallo de serialización o carrera
// de creación), hasta maxRetries veces. Cualquier otro error es terminal.
func (uc *StockOperationsUseCase) runWithRetry(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	var err error
	for attempt := 0; attempt <= uc.maxRetries; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

func toStockRecordDTO(record *entity.StockRecord) dto.StockRecordDTO {
	return dto.StockRecordDTO{
		ID:          record.ID,
		ProductID:   record.ProductID,
		WarehouseID: record.WarehouseID,
		BatchNumber: record.BatchNumber,
		Quantity:    record.Quantity,
		ExpiryDate:  record.ExpiryDate,
		UpdatedAt:   record.UpdatedAt,
	}
}
