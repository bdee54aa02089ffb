package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

// ServiceOrderRepo órdenes de servicio; talhões e insumos se guardan como JSONB.
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

const orderColumns = `id, order_number, cost_center_id, operation_id, generated_date, responsible_id, farm_id,
	section, plots, inputs, calda_per_ha, status, progress_percent, started_at, finished_at, created_at, updated_at`

func (r *ServiceOrderRepo) Create(ctx context.Context, o *entity.ServiceOrder) error {
	plots, inputs, err := marshalOrderLines(o)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO service_orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		o.ID, o.OrderNumber, o.CostCenterID, o.OperationID, o.GeneratedDate, o.ResponsibleID, o.FarmID,
		o.Section, plots, inputs, o.CaldaPerHa, o.Status, o.ProgressPercent, o.StartedAt, o.FinishedAt,
		o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return wrapErr("create service order", err)
	}
	return nil
}

func (r *ServiceOrderRepo) GetByID(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.get(ctx, id, "")
}

func (r *ServiceOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *ServiceOrderRepo) get(ctx context.Context, id, suffix string) (*entity.ServiceOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM service_orders WHERE id = $1`+suffix, id))
	if err != nil {
		return nil, wrapErr("get service order", err)
	}
	return o, nil
}

func (r *ServiceOrderRepo) Update(ctx context.Context, o *entity.ServiceOrder) error {
	plots, inputs, err := marshalOrderLines(o)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE service_orders SET order_number = $2, cost_center_id = $3, operation_id = $4, generated_date = $5,
			responsible_id = $6, farm_id = $7, section = $8, plots = $9, inputs = $10, calda_per_ha = $11,
			status = $12, progress_percent = $13, started_at = $14, finished_at = $15, updated_at = $16
		WHERE id = $1`,
		o.ID, o.OrderNumber, o.CostCenterID, o.OperationID, o.GeneratedDate,
		o.ResponsibleID, o.FarmID, o.Section, plots, inputs, o.CaldaPerHa,
		o.Status, o.ProgressPercent, o.StartedAt, o.FinishedAt, o.UpdatedAt)
	return expectOne("update service order", tag, err)
}

// List ordenadas por fecha de generación descendente.
func (r *ServiceOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.ServiceOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM service_orders
		ORDER BY generated_date DESC, order_number LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrapErr("list service orders", err)
	}
	defer rows.Close()
	var list []*entity.ServiceOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, wrapErr("scan service order", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func marshalOrderLines(o *entity.ServiceOrder) ([]byte, []byte, error) {
	plots, err := json.Marshal(nonNil(o.Plots))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal plots: %w", err)
	}
	inputs, err := json.Marshal(nonNil(o.Inputs))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal inputs: %w", err)
	}
	return plots, inputs, nil
}

func scanOrder(row pgx.Row) (*entity.ServiceOrder, error) {
	var (
		o             entity.ServiceOrder
		plots, inputs []byte
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CostCenterID, &o.OperationID, &o.GeneratedDate, &o.ResponsibleID,
		&o.FarmID, &o.Section, &plots, &inputs, &o.CaldaPerHa, &o.Status, &o.ProgressPercent,
		&o.StartedAt, &o.FinishedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plots, &o.Plots); err != nil {
		return nil, fmt.Errorf("unmarshal plots: %w", err)
	}
	if err := json.Unmarshal(inputs, &o.Inputs); err != nil {
		return nil, fmt.Errorf("unmarshal inputs: %w", err)
	}
	return &o, nil
}

// nonNil evita guardar null en columnas JSONB NOT NULL.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
