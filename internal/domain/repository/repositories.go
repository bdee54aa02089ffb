package repository

// Repositories agrupa los repositorios atados a una misma transacción.
// Todos los Get* devuelven domain.ErrNotFound (envuelto) cuando el registro no existe.
type Repositories struct {
	Entries     StockEntryRepository
	TierRecords TierStockRepository
	Movements   InventoryMovementRepository
	Orders      ServiceOrderRepository
	Parcelas    ParcelaRepository
	Reference   ReferenceRepository
}
