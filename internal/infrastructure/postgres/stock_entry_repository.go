package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación de StockEntryRepository sobre PostgreSQL (usable con pool o tx).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

const stockEntryColumns = `note_id, item_id, lot_code, supplier_id, entry_date, received_qty, unit, expiry_date,
	package_type, package_count, package_capacity, current_balance, location_code, active, seq`

// Create registra el lote; seq lo asigna la secuencia de la tabla.
func (r *StockEntryRepo) Create(ctx context.Context, e *entity.StockEntry) error {
	e.Active = e.CurrentBalance.IsPositive()
	query := `
		INSERT INTO stock_entries (note_id, item_id, lot_code, supplier_id, entry_date, received_qty, unit, expiry_date,
			package_type, package_count, package_capacity, current_balance, location_code, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		e.NoteID, e.ItemID, e.LotCode, e.SupplierID, e.EntryDate, e.ReceivedQty, e.Unit, nullTime(e.ExpiryDate),
		e.PackageType, e.PackageCount, e.PackageCapacity, e.CurrentBalance, e.LocationCode, e.Active,
	).Scan(&e.Seq)
	if err != nil {
		return wrapErr("create stock entry", err)
	}
	return nil
}

func (r *StockEntryRepo) Get(ctx context.Context, key entity.EntryKey) (*entity.StockEntry, error) {
	return r.get(ctx, key, "")
}

// GetForUpdate bloquea la fila del lote hasta el fin de la transacción.
func (r *StockEntryRepo) GetForUpdate(ctx context.Context, key entity.EntryKey) (*entity.StockEntry, error) {
	return r.get(ctx, key, " FOR UPDATE")
}

func (r *StockEntryRepo) get(ctx context.Context, key entity.EntryKey, suffix string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE note_id = $1 AND item_id = $2 AND lot_code = $3` + suffix
	e, err := scanStockEntry(r.q.QueryRow(ctx, query, key.NoteID, key.ItemID, key.LotCode))
	if err != nil {
		return nil, wrapErr("get stock entry", err)
	}
	return e, nil
}

func (r *StockEntryRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockEntry, error) {
	query := `SELECT ` + stockEntryColumns + ` FROM stock_entries WHERE item_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, wrapErr("list stock entries", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		e, err := scanStockEntry(rows)
		if err != nil {
			return nil, wrapErr("scan stock entry", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// UpdateBalance persiste CurrentBalance y Active.
func (r *StockEntryRepo) UpdateBalance(ctx context.Context, e *entity.StockEntry) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_entries SET current_balance = $4, active = $5
		WHERE note_id = $1 AND item_id = $2 AND lot_code = $3`,
		e.NoteID, e.ItemID, e.LotCode, e.CurrentBalance, e.Active)
	return expectOne("update stock entry", tag, err)
}

func scanStockEntry(row pgx.Row) (*entity.StockEntry, error) {
	var (
		e      entity.StockEntry
		expiry *time.Time
	)
	err := row.Scan(&e.NoteID, &e.ItemID, &e.LotCode, &e.SupplierID, &e.EntryDate, &e.ReceivedQty, &e.Unit, &expiry,
		&e.PackageType, &e.PackageCount, &e.PackageCapacity, &e.CurrentBalance, &e.LocationCode, &e.Active, &e.Seq)
	if err != nil {
		return nil, err
	}
	if expiry != nil {
		e.ExpiryDate = *expiry
	}
	return &e, nil
}

// nullTime convierte el time cero en NULL.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
