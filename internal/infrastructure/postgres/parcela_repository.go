package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.ParcelaRepository = (*ParcelaRepo)(nil)

// ParcelaRepo cargas de camión; los insumos movidos se guardan como JSONB.
type ParcelaRepo struct {
	q Querier
}

// NewParcelaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewParcelaRepository(q Querier) *ParcelaRepo {
	return &ParcelaRepo{q: q}
}

const parcelaColumns = `id, order_id, mixer_id, truck_id, truck_capacity, mix_proportion_percent, moved_inputs,
	status, progress_share, created_at, started_at, finished_at`

func (r *ParcelaRepo) Create(ctx context.Context, p *entity.Parcela) error {
	moved, err := json.Marshal(nonNil(p.MovedInputs))
	if err != nil {
		return fmt.Errorf("marshal moved inputs: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO parcelas (`+parcelaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.OrderID, p.MixerID, p.TruckID, p.TruckCapacity, p.MixProportionPercent, moved,
		p.Status, p.ProgressShare, p.CreatedAt, p.StartedAt, p.FinishedAt)
	if err != nil {
		return wrapErr("create parcela", err)
	}
	return nil
}

func (r *ParcelaRepo) GetByID(ctx context.Context, id string) (*entity.Parcela, error) {
	return r.get(ctx, id, "")
}

func (r *ParcelaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Parcela, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *ParcelaRepo) get(ctx context.Context, id, suffix string) (*entity.Parcela, error) {
	p, err := scanParcela(r.q.QueryRow(ctx, `SELECT `+parcelaColumns+` FROM parcelas WHERE id = $1`+suffix, id))
	if err != nil {
		return nil, wrapErr("get parcela", err)
	}
	return p, nil
}

func (r *ParcelaRepo) Update(ctx context.Context, p *entity.Parcela) error {
	moved, err := json.Marshal(nonNil(p.MovedInputs))
	if err != nil {
		return fmt.Errorf("marshal moved inputs: %w", err)
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE parcelas SET mixer_id = $2, truck_id = $3, truck_capacity = $4, mix_proportion_percent = $5,
			moved_inputs = $6, status = $7, progress_share = $8, started_at = $9, finished_at = $10
		WHERE id = $1`,
		p.ID, p.MixerID, p.TruckID, p.TruckCapacity, p.MixProportionPercent,
		moved, p.Status, p.ProgressShare, p.StartedAt, p.FinishedAt)
	return expectOne("update parcela", tag, err)
}

func (r *ParcelaRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Parcela, error) {
	rows, err := r.q.Query(ctx, `SELECT `+parcelaColumns+` FROM parcelas
		WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, wrapErr("list parcelas", err)
	}
	defer rows.Close()
	var list []*entity.Parcela
	for rows.Next() {
		p, err := scanParcela(rows)
		if err != nil {
			return nil, wrapErr("scan parcela", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanParcela(row pgx.Row) (*entity.Parcela, error) {
	var (
		p     entity.Parcela
		moved []byte
	)
	err := row.Scan(&p.ID, &p.OrderID, &p.MixerID, &p.TruckID, &p.TruckCapacity, &p.MixProportionPercent, &moved,
		&p.Status, &p.ProgressShare, &p.CreatedAt, &p.StartedAt, &p.FinishedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(moved, &p.MovedInputs); err != nil {
		return nil, fmt.Errorf("unmarshal moved inputs: %w", err)
	}
	return &p, nil
}
