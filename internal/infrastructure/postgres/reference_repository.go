package postgres

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo catálogos de haciendas, talhões, camiones y mezcladores.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

func (r *ReferenceRepo) GetFarm(ctx context.Context, id string) (*entity.Farm, error) {
	var f entity.Farm
	err := r.q.QueryRow(ctx, `SELECT id, name FROM farms WHERE id = $1`, id).Scan(&f.ID, &f.Name)
	if err != nil {
		return nil, wrapErr("get farm", err)
	}
	return &f, nil
}

func (r *ReferenceRepo) GetPlot(ctx context.Context, id string) (*entity.Plot, error) {
	var p entity.Plot
	err := r.q.QueryRow(ctx, `SELECT id, farm_id, name, area FROM plots WHERE id = $1`, id).
		Scan(&p.ID, &p.FarmID, &p.Name, &p.Area)
	if err != nil {
		return nil, wrapErr("get plot", err)
	}
	return &p, nil
}

func (r *ReferenceRepo) GetTruck(ctx context.Context, id string) (*entity.Truck, error) {
	var t entity.Truck
	err := r.q.QueryRow(ctx, `SELECT id, plate, rated_capacity FROM trucks WHERE id = $1`, id).
		Scan(&t.ID, &t.Plate, &t.RatedCapacity)
	if err != nil {
		return nil, wrapErr("get truck", err)
	}
	return &t, nil
}

func (r *ReferenceRepo) GetMixer(ctx context.Context, id string) (*entity.Mixer, error) {
	var m entity.Mixer
	err := r.q.QueryRow(ctx, `SELECT id, name, location_id FROM mixers WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.LocationID)
	if err != nil {
		return nil, wrapErr("get mixer", err)
	}
	return &m, nil
}
