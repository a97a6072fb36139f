package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// StockHandler traduce las peticiones HTTP a operaciones del motor de stock y
// sus resultados tipados a códigos de estado. La autenticación y la validación
// de negocio viven fuera de este servicio.
type StockHandler struct {
	ops     *stock.StockOperationsUseCase
	queries *stock.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ops *stock.StockOperationsUseCase, queries *stock.StockQueryUseCase) *StockHandler {
	return &StockHandler{ops: ops, queries: queries}
}

// Receive registra una entrada de inventario.
// POST /api/stock/receive
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.ops.Receive(c.Context(), stock.ReceiveInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  in.ExpiryDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Transfer traslada stock entre bodegas.
// POST /api/stock/transfer
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.ops.Transfer(c.Context(), stock.TransferInput{
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		BatchNumber:     in.BatchNumber,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// Adjust aplica un ajuste manual auditado.
// POST /api/stock/adjust
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.ops.Adjust(c.Context(), stock.AdjustInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Delta:       in.Delta,
		Reason:      in.Reason,
		BatchNumber: in.BatchNumber,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(record)
}

// List lista registros de stock con filtros opcionales product_id y warehouse_id.
// GET /api/stock
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.queries.ListAll(c.Context(), c.Query("product_id"), c.Query("warehouse_id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "records": list})
}

// GetRecord devuelve un registro de stock por su clave.
// GET /api/stock/record?product_id=...&warehouse_id=...&batch_number=...
func (h *StockHandler) GetRecord(c *fiber.Ctx) error {
	var batch *string
	if b := c.Query("batch_number"); b != "" {
		batch = &b
	}
	record, err := h.queries.GetStockRecord(c.Query("product_id"), c.Query("warehouse_id"), batch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(record)
}

// GetMovements lista el diario de movimientos por producto o por bodega, con
// rango de fechas opcional (from/to en RFC 3339).
// GET /api/stock/movements?product_id=...|warehouse_id=...
func (h *StockHandler) GetMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser una fecha RFC 3339"})
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser una fecha RFC 3339"})
	}
	movements, err := h.queries.ListMovements(c.Query("product_id"), c.Query("warehouse_id"), from, to, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTotalStock devuelve el stock total de un producto con desglose por bodega.
// GET /api/stock/products/:id/total
func (h *StockHandler) GetTotalStock(c *fiber.Ctx) error {
	total, err := h.queries.GetTotalStock(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(total)
}

// GetLowStock devuelve los productos en o bajo su umbral mínimo de stock.
// GET /api/stock/low?warehouse_id=...  (vacío = stock global)
func (h *StockHandler) GetLowStock(c *fiber.Ctx) error {
	entries, err := h.queries.GetLowStock(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "alerts": entries})
}

// writeError mapea los errores tipados del dominio a estados HTTP, incluyendo
// el detalle estructurado cuando el error lo lleva.
func writeError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente en bodega origen",
			Details: fiber.Map{"available": insufficient.Available, "requested": insufficient.Requested},
		})
	}
	var negative *domain.NegativeStockError
	if errors.As(err, &negative) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "NEGATIVE_STOCK_RESULT",
			Message: "el ajuste dejaría el stock en negativo",
			Details: fiber.Map{"current": negative.Current, "delta": negative.Delta},
		})
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrWarehouseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "WAREHOUSE_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrSourceStockNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SOURCE_STOCK_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrStockRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "STOCK_RECORD_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
