package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.TierStockRepository = (*TierStockRepo)(nil)

// TierStockRepo registros técnico/fraccionado sobre PostgreSQL.
type TierStockRepo struct {
	q Querier
}

// NewTierStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTierStockRepository(q Querier) *TierStockRepo {
	return &TierStockRepo{q: q}
}

const tierRecordColumns = `record_id, tier, item_id, lot_code, location_id, moved_qty, unit,
	available_balance, usage_date, source_tier, source_ref, created_at`

func (r *TierStockRepo) Create(ctx context.Context, rec *entity.TierStockRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tier_stock_records (`+tierRecordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.RecordID, rec.Tier, rec.ItemID, rec.LotCode, rec.LocationID, rec.MovedQty, rec.Unit,
		rec.AvailableBalance, rec.UsageDate, rec.SourceTier, rec.SourceRef, rec.CreatedAt)
	if err != nil {
		return wrapErr("create tier record", err)
	}
	return nil
}

func (r *TierStockRepo) GetByID(ctx context.Context, recordID string) (*entity.TierStockRecord, error) {
	return r.get(ctx, recordID, "")
}

func (r *TierStockRepo) GetForUpdate(ctx context.Context, recordID string) (*entity.TierStockRecord, error) {
	return r.get(ctx, recordID, " FOR UPDATE")
}

func (r *TierStockRepo) get(ctx context.Context, recordID, suffix string) (*entity.TierStockRecord, error) {
	query := `SELECT ` + tierRecordColumns + ` FROM tier_stock_records WHERE record_id = $1` + suffix
	rec, err := scanTierRecord(r.q.QueryRow(ctx, query, recordID))
	if err != nil {
		return nil, wrapErr("get tier record", err)
	}
	return rec, nil
}

// ListAvailable registros con saldo del tier; itemID vacío = todos los ítems.
func (r *TierStockRepo) ListAvailable(ctx context.Context, tier entity.Tier, itemID string) ([]*entity.TierStockRecord, error) {
	query := `SELECT ` + tierRecordColumns + `
		FROM tier_stock_records
		WHERE tier = $1 AND available_balance > 0 AND ($2 = '' OR item_id = $2)
		ORDER BY created_at, record_id`
	rows, err := r.q.Query(ctx, query, tier, itemID)
	if err != nil {
		return nil, wrapErr("list tier records", err)
	}
	defer rows.Close()
	var list []*entity.TierStockRecord
	for rows.Next() {
		rec, err := scanTierRecord(rows)
		if err != nil {
			return nil, wrapErr("scan tier record", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (r *TierStockRepo) UpdateBalance(ctx context.Context, rec *entity.TierStockRecord) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE tier_stock_records SET available_balance = $2, usage_date = $3 WHERE record_id = $1`,
		rec.RecordID, rec.AvailableBalance, rec.UsageDate)
	return expectOne("update tier record", tag, err)
}

func scanTierRecord(row pgx.Row) (*entity.TierStockRecord, error) {
	var rec entity.TierStockRecord
	err := row.Scan(&rec.RecordID, &rec.Tier, &rec.ItemID, &rec.LotCode, &rec.LocationID, &rec.MovedQty, &rec.Unit,
		&rec.AvailableBalance, &rec.UsageDate, &rec.SourceTier, &rec.SourceRef, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
