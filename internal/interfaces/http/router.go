package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockOps     *stock.StockOperationsUseCase
	StockQueries *stock.StockQueryUseCase
}

// Router registra las rutas de la API. Autenticación y autorización quedan en
// manos del gateway que antecede a este servicio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	handler := NewStockHandler(deps.StockOps, deps.StockQueries)

	stockGroup := api.Group("/stock")
	stockGroup.Get("/", handler.List)
	stockGroup.Get("/record", handler.GetRecord)
	stockGroup.Get("/movements", handler.GetMovements)
	stockGroup.Get("/low", handler.GetLowStock)
	stockGroup.Get("/products/:id/total", handler.GetTotalStock)
	stockGroup.Post("/receive", handler.Receive)
	stockGroup.Post("/transfer", handler.Transfer)
	stockGroup.Post("/adjust", handler.Adjust)
}
