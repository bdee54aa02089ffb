package repository

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos del ledger.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByParcela(ctx context.Context, parcelaID string) ([]*entity.InventoryMovement, error)
}
