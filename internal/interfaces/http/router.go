package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartcalda-api/internal/application/inventory"
	"github.com/jhoicas/smartcalda-api/internal/application/order"
	appparcela "github.com/jhoicas/smartcalda-api/internal/application/parcela"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *inventory.LedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Orders        *order.OrderUseCase
	Parcelas      *appparcela.ParcelaUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ledger de inventario
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inv.Get("/items/:itemId/entries", inventoryHandler.ListEntries)
	inv.Get("/items/:itemId/movements", inventoryHandler.ListMovements)
	inv.Get("/tiers/:tier/items/:itemId/records", inventoryHandler.ListTierRecords)
	inv.Post("/withdrawals", inventoryHandler.Withdraw)
	inv.Post("/transfers", inventoryHandler.Transfer)

	// Órdenes de servicio
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orders, deps.Parcelas, deps.Replenishment)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Get("/:id/replenishment", orderHandler.Replenishment)
	orders.Post("/:id/parcelas/preview", orderHandler.PreviewParcela)
	orders.Post("/:id/parcelas", orderHandler.CreateParcela)

	// Parcelas
	parcelas := api.Group("/parcelas")
	parcelaHandler := NewParcelaHandler(deps.Parcelas)
	parcelas.Get("/:id", parcelaHandler.Get)
	parcelas.Put("/:id", parcelaHandler.Edit)
	parcelas.Post("/:id/dispatch", parcelaHandler.Dispatch)
	parcelas.Post("/:id/cancel", parcelaHandler.Cancel)
	parcelas.Post("/:id/pause", parcelaHandler.Pause)
	parcelas.Post("/:id/resume", parcelaHandler.Resume)
	parcelas.Post("/:id/block", parcelaHandler.Block)
	parcelas.Post("/:id/complete", parcelaHandler.Complete)
}
