package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, transaction_id, type, item_id, lot_code, source_tier, source_ref,
	dest_tier, dest_ref, quantity, unit, parcela_id, created_at`

// Create persiste un movimiento del ledger.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.ID, m.TransactionID, m.Type, m.ItemID, m.LotCode, m.SourceTier, m.SourceRef,
		m.DestTier, m.DestRef, m.Quantity, m.Unit, m.ParcelaID, m.CreatedAt)
	if err != nil {
		return wrapErr("create inventory movement", err)
	}
	return nil
}

// ListByItem movimientos del ítem, más recientes primero.
func (r *InventoryMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE item_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, itemID, limit, offset)
}

func (r *InventoryMovementRepo) ListByParcela(ctx context.Context, parcelaID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE parcela_id = $1 ORDER BY created_at, id`, parcelaID)
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list inventory movements", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, wrapErr("scan inventory movement", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	err := row.Scan(&m.ID, &m.TransactionID, &m.Type, &m.ItemID, &m.LotCode, &m.SourceTier, &m.SourceRef,
		&m.DestTier, &m.DestRef, &m.Quantity, &m.Unit, &m.ParcelaID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
