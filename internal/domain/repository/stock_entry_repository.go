package repository

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// StockEntryRepository define el puerto de persistencia de los lotes del almacén principal.
type StockEntryRepository interface {
	// Create registra un lote recibido (colaborador de recepción de mercadería).
	Create(ctx context.Context, e *entity.StockEntry) error
	Get(ctx context.Context, key entity.EntryKey) (*entity.StockEntry, error)
	// GetForUpdate bloquea el lote hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, key entity.EntryKey) (*entity.StockEntry, error)
	// ListByItem devuelve todos los lotes del ítem en orden de inserción.
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockEntry, error)
	UpdateBalance(ctx context.Context, e *entity.StockEntry) error
}
